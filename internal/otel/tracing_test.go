package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSampler(t *testing.T) {
	tests := map[string]struct {
		name, arg string
		want      string
	}{
		"always on":         {"always_on", "", "AlwaysOnSampler"},
		"always off":        {"always_off", "", "AlwaysOffSampler"},
		"ratio":             {"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		"bad ratio":         {"traceidratio", "abc", "AlwaysOnSampler"},
		"out of range":      {"traceidratio", "7", "AlwaysOnSampler"},
		"parent ratio":      {"parentbased_traceidratio", "0.5", "ParentBased{root:TraceIDRatioBased{0.5}"},
		"unknown defaults":  {"bogus", "", "ParentBased{root:AlwaysOnSampler"},
		"parent always off": {"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, sampler(tt.name, tt.arg).Description(), tt.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, 1, logs.FilterMessage("tracing_configured").Len())
	assert.Equal(t, false, logs.All()[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Equal(t, 1, logs.FilterMessage("tracing_init_failed").Len())
}
