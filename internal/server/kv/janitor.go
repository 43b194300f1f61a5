package kv

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/logging"
)

// RunJanitor calls PurgeExpired every interval until ctx is done.
func RunJanitor(ctx context.Context, p Purger, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				logger.Warn(ctx, "purge expired keys failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug(ctx, "purged expired keys", "count", n)
			}
		}
	}
}
