package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleHandler_Enabled(t *testing.T) {
	h := &SimpleHandler{Level: slog.LevelInfo}
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	// nil level means info
	assert.False(t, (&SimpleHandler{}).Enabled(ctx, slog.LevelDebug))
}

func TestSimpleHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := &SimpleHandler{Output: &buf, Level: slog.LevelInfo}
	ctx := context.Background()

	// Use a fixed time for reproducible output
	fixedTime := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)

	r := slog.NewRecord(fixedTime, slog.LevelInfo, "test message", 0)
	r.AddAttrs(slog.String("key", "value"), slog.Int("count", 42))

	err := h.Handle(ctx, r)
	assert.NoError(t, err)

	// Expected format: "2006-01-02 15:04:05 [LEVEL] Message key=value count=42\n"
	assert.Equal(t, "2023-10-27 10:00:00 [INFO] test message key=value count=42\n", buf.String())
}

func TestSimpleHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = &SimpleHandler{Output: &buf, Level: slog.LevelInfo}
	h = h.WithAttrs([]slog.Attr{slog.String("app", "heatmap")})
	h = h.WithGroup("req")

	fixedTime := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	r := slog.NewRecord(fixedTime, slog.LevelWarn, "slow", 0)
	r.AddAttrs(slog.String("path", "/heatmap.svg"))

	assert.NoError(t, h.Handle(context.Background(), r))
	assert.Equal(t, "2023-10-27 10:00:00 [WARN] slow app=heatmap req.path=/heatmap.svg\n", buf.String())
}

func TestSimpleHandler_WithAttrsDoesNotMutate(t *testing.T) {
	h := &SimpleHandler{Level: slog.LevelInfo}
	newH := h.WithAttrs([]slog.Attr{slog.String("a", "b")})
	assert.NotSame(t, h, newH)
	assert.Empty(t, h.attrs)

	assert.Same(t, h, h.WithAttrs(nil))
	assert.Same(t, h, h.WithGroup(""))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHandler_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelDebug)
	_, ok := h.(*SimpleHandler)
	assert.True(t, ok)
}
