package server

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/server/config"
	"github.com/dmitrijs2005/gophkms/internal/server/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.PurgeInterval = 10 * time.Millisecond
	c.RSAKeyBits = 1024
	c.Argon2MemoryKB = 8 * 1024
	return c
}

func TestNewApp_MemoryDrivers(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)
	require.NotNil(t, app.server)
	require.NotNil(t, app.store)
	assert.NoError(t, app.store.Ping(context.Background()))
}

func TestNewApp_UnknownDrivers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errSub string
	}{
		{"store", func(c *config.Config) { c.StoreDriver = "redis" }, "store init error"},
		{"blobs", func(c *config.Config) { c.BlobDriver = "ftp" }, "blob store init error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mutate(c)
			_, err := newApp(context.Background(), c, io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	c := testConfig()
	c.SessionTTL = 0

	app, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "config error")
	assert.Contains(t, err.Error(), "session ttl")
}

func TestNewRelay(t *testing.T) {
	var buf bytes.Buffer
	c := testConfig()
	app, err := newApp(context.Background(), c, &buf)
	require.NoError(t, err)

	_, isLog := newRelay(c, app.logger).(*mail.LogRelay)
	assert.True(t, isLog)
	assert.Contains(t, buf.String(), "smtp host not set")

	c.SMTPHost = "smtp.local"
	_, isSMTP := newRelay(c, app.logger).(*mail.SMTPRelay)
	assert.True(t, isSMTP)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	app, err := newApp(context.Background(), testConfig(), &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, buf.String(), "App stopped")
}

func TestApp_RunStopsOnListenError(t *testing.T) {
	c := testConfig()
	c.EndpointAddrGRPC = "bad::addr"
	app, err := newApp(context.Background(), c, io.Discard)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after listen error")
	}
}
