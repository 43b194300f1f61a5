// Package mail delivers one-time codes to users.
package mail

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophkms/internal/logging"
)

// Relay sends a single plain-text message. Implementations do not retry.
type Relay interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CodeMessage renders the message carrying a one-time code.
func CodeMessage(code string) (subject, body string) {
	return "Your 2FA Code", fmt.Sprintf("Your verification code is: %s", code)
}

// LogRelay writes messages to the log instead of sending them. It is used
// when no SMTP server is configured.
type LogRelay struct {
	logger logging.Logger
}

func NewLogRelay(logger logging.Logger) *LogRelay {
	return &LogRelay{logger: logger.With("module", "mail")}
}

func (r *LogRelay) Send(ctx context.Context, to, subject, body string) error {
	r.logger.Info(ctx, "mail not sent, no SMTP relay configured", "to", to, "subject", subject, "body", body)
	return nil
}
