package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/supplykz/supplier-console/config"
	"github.com/supplykz/supplier-console/internal/shared"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ObservabilityConfig
		wantErr bool
		level   zapcore.Level
	}{
		{name: "json debug", cfg: config.ObservabilityConfig{LogLevel: "debug", LogFormat: "json"}, level: zapcore.DebugLevel},
		{name: "console warn", cfg: config.ObservabilityConfig{LogLevel: "WARN", LogFormat: "console"}, level: zapcore.WarnLevel},
		{name: "invalid level", cfg: config.ObservabilityConfig{LogLevel: "loud", LogFormat: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestContextLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewContextLogger(zap.New(core))

	ctx := shared.WithRequestID(context.Background(), "req-42")
	logger.Info(ctx, "order accepted", zap.Int64("order_id", 7))
	logger.Warn(context.Background(), "no request id")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(7), entries[0].ContextMap()["order_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestContextLogger_NilBase(t *testing.T) {
	logger := NewContextLogger(nil)
	assert.NotPanics(t, func() {
		logger.Error(context.Background(), "dropped")
	})
	assert.NotNil(t, logger.Zap())
}
