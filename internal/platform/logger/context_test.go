package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/lexirev/lexirev/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestFromContextOrDefault(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	defaultLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "logger in context",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
		{
			name:     "no logger in context",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFromContext(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), customLogger)
	assert.Equal(t, customLogger, logger.FromContext(ctx))

	// Without a logger in the context, the process default is returned.
	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestWithLoggerNil(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, logger.WithLogger(ctx, nil))
}
