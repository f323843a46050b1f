package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLevels(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		logFunc      func(*slog.Logger)
		shouldLog    bool
	}{
		{"info handler logs info", slog.LevelInfo, func(l *slog.Logger) { l.Info("m") }, true},
		{"info handler filters debug", slog.LevelInfo, func(l *slog.Logger) { l.Debug("m") }, false},
		{"debug handler logs debug", slog.LevelDebug, func(l *slog.Logger) { l.Debug("m") }, true},
		{"error handler logs error", slog.LevelError, func(l *slog.Logger) { l.Error("m") }, true},
		{"error handler filters warn", slog.LevelError, func(l *slog.Logger) { l.Warn("m") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(slog.New(NewHandler(&buf, tt.handlerLevel)))
			assert.Equal(t, tt.shouldLog, buf.Len() > 0)
		})
	}
}

func TestHandlerColors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Info("fine")
	assert.Contains(t, buf.String(), colorGreen)
	assert.NotContains(t, buf.String(), colorRed)

	buf.Reset()
	logger.Warn("careful")
	assert.Contains(t, buf.String(), colorYellow)

	buf.Reset()
	logger.Error("broken")
	assert.Contains(t, buf.String(), colorRed)
	assert.Contains(t, buf.String(), colorReset)
}

func TestHandlerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	logger.Info("scored", "profile", "default", "overall", 86)

	out := buf.String()
	assert.Contains(t, out, "scored")
	assert.Contains(t, out, "profile=default")
	assert.Contains(t, out, "overall=86")
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHandler(&buf, slog.LevelInfo)

	assert.Same(t, slog.Handler(handler), handler.WithAttrs(nil))

	logger := slog.New(handler).With("profile", "balanced")
	logger.Info("loaded")
	assert.Contains(t, buf.String(), "profile=balanced")
}

func TestHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHandler(&buf, slog.LevelInfo)

	slog.New(handler.WithGroup("assess")).Info("done")
	assert.Contains(t, buf.String(), "[assess]")

	buf.Reset()
	slog.New(handler.WithGroup("")).Info("no prefix")
	assert.NotContains(t, buf.String(), "] no prefix")
}

func TestNewCLILogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		require.NotNil(t, NewCLILogger(level), level)
	}
}

func TestSetDefaultCLILogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	SetDefaultCLILogger("debug")
	require.NotNil(t, slog.Default())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"  debug  ", slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), tt.input)
	}
}
