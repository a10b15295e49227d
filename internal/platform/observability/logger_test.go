package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerHonorsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level enabled")
	}
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("unparseable level must fall back to info")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info level enabled")
	}
}

func TestFromContextFallsBackToNop(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected a usable logger")
	}

	logger := zap.NewNop().Named("req")
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatalf("expected the injected logger back")
	}
}
