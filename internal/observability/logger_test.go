package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":       zapcore.InfoLevel,
		"debug":  zapcore.DebugLevel,
		" WARN ": zapcore.WarnLevel,
		"chatty": zapcore.InfoLevel,
		"error":  zapcore.ErrorLevel,
	}
	for in, want := range cases {
		logger, err := NewLogger(in)
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", in, err)
		}
		if !logger.Core().Enabled(want) {
			t.Errorf("NewLogger(%q): expected %s enabled", in, want)
		}
		if want > zapcore.DebugLevel && logger.Core().Enabled(want-1) {
			t.Errorf("NewLogger(%q): expected %s disabled", in, want-1)
		}
	}
}

func TestContextLogger(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected noop logger for empty context")
	}
	l := zap.NewExample()
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("expected stored logger back")
	}
	if FromContext(WithLogger(context.Background(), nil)) == nil {
		t.Fatalf("expected nil logger replaced by noop")
	}
}
