package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "text")
	ctx := context.Background()

	tests := []struct {
		write func()
		level string
		attr  string
	}{
		{func() { log.Debug(ctx, "purged expired keys", "count", 3) }, "DEBUG", "count=3"},
		{func() { log.Info(ctx, "rpc", "method", "/gophkms.v1.KeyBroker/Login") }, "INFO", "method=/gophkms.v1.KeyBroker/Login"},
		{func() { log.Warn(ctx, "grant bookkeeping failed", "resource", "db-prod") }, "WARN", "resource=db-prod"},
		{func() { log.Error(ctx, "store close error", "error", "eof") }, "ERROR", "error=eof"},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.write()
			out := buf.String()
			assert.Contains(t, out, "level="+tt.level)
			assert.Contains(t, out, tt.attr)
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json").With("module", "grpc_server")
	log.Info(context.Background(), "rpc", "request_id", "r-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "grpc_server", rec["module"])
	assert.Equal(t, "r-1", rec["request_id"])
	assert.Equal(t, "rpc", rec["msg"])
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "").Info(context.Background(), "hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewSlogLogger_WrapsExisting(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	l.Info(context.TODO(), "ok")
	assert.Contains(t, buf.String(), "msg=ok")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
