package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if email := a.currentEmail(); email != "" && a.isLoggedIn() {
		parts = append(parts, email)
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL with the connectivity watcher in the background.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to gophkms CLI (type 'help' for commands)")

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
