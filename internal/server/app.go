// Package server assembles the key broker from its configuration and runs
// it until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/logging"
	"github.com/dmitrijs2005/gophkms/internal/server/blobs"
	"github.com/dmitrijs2005/gophkms/internal/server/challenges"
	"github.com/dmitrijs2005/gophkms/internal/server/config"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
	"github.com/dmitrijs2005/gophkms/internal/server/ledger"
	"github.com/dmitrijs2005/gophkms/internal/server/mail"
	"github.com/dmitrijs2005/gophkms/internal/server/services"
	"github.com/dmitrijs2005/gophkms/internal/server/sessions"
	"github.com/dmitrijs2005/gophkms/internal/server/users"

	gs "github.com/dmitrijs2005/gophkms/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  kv.Store
	server *gs.GRPCServer
}

// NewApp validates c and wires the broker with logs going to stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogLevel, c.LogFormat)

	store, err := kv.Open(ctx, c.StoreDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	blobStore, err := blobs.Open(ctx, c.BlobDriver, blobs.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	sm := sessions.NewManager(store)

	broker := services.NewBrokerService(services.BrokerDeps{
		Users:         users.NewKVRepository(store),
		Registrations: challenges.NewStore(store, challenges.TrackRegistration),
		Logins:        challenges.NewStore(store, challenges.TrackLogin),
		Sessions:      sm,
		Ledger:        ledger.New(store, c.RSAKeyBits, logger),
		Hasher: cryptox.NewPasswordHasher(cryptox.Argon2Params{
			Time:    c.Argon2Time,
			Memory:  c.Argon2MemoryKB,
			Threads: c.Argon2Threads,
			SaltLen: cryptox.DefaultArgon2Params.SaltLen,
			KeyLen:  cryptox.DefaultArgon2Params.KeyLen,
		}),
		Mail: newRelay(c, logger),
	}, services.BrokerTTLs{
		Registration: c.RegistrationTTL,
		Login:        c.LoginTTL,
		Session:      c.SessionTTL,
	}, logger)

	bs := blobs.NewService(blobStore, sm, logger)

	srv, err := gs.NewGRPCServer(c.EndpointAddrGRPC, c.RequestTimeout, logger, broker, bs, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, store: store, server: srv}, nil
}

// newRelay picks SMTP when a host is configured and the log relay otherwise.
func newRelay(c *config.Config, logger logging.Logger) mail.Relay {
	if c.SMTPHost == "" {
		logger.Warn(context.Background(), "smtp host not set, verification codes will be logged")
		return mail.NewLogRelay(logger)
	}
	return mail.NewSMTPRelay(mail.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPSender,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startJanitor(ctx context.Context) {
	p, ok := app.store.(kv.Purger)
	if !ok || app.config.PurgeInterval <= 0 {
		return
	}
	kv.RunJanitor(ctx, p, app.config.PurgeInterval, app.logger)
}

// Run serves until ctx is done, a signal arrives or the listener fails,
// then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrGRPC,
		"store", app.config.StoreDriver, "blobs", app.config.BlobDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startJanitor(ctx)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
