package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/client/client"
	"github.com/dmitrijs2005/gophkms/internal/client/config"
	"github.com/dmitrijs2005/gophkms/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	keyService  services.KeyService
	reader      *bufio.Reader
	out         io.Writer

	mu    sync.RWMutex
	Mode  Mode
	email string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewKeyBrokerClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient)
	ks := services.NewKeyService(apiClient)

	return &App{
		config:      c,
		authService: as,
		keyService:  ks,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

// withTimeout bounds a single command by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
