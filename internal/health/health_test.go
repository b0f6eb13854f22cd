package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/connectivity"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

func TestHealthAlwaysHealthy(t *testing.T) {
	c := NewChecker("1.2.3")

	resp := c.Health()
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotZero(t, resp.Timestamp)
}

func TestReadinessAggregatesWorstStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"one unhealthy", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
		{"no checks", nil, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("test")
			for i, status := range tt.statuses {
				s := status
				c.RegisterCheck(string(rune('a'+i)), func(_ context.Context) Check {
					return Check{Status: s}
				})
			}

			resp := c.Readiness(context.Background())
			assert.Equal(t, tt.want, resp.Status)
			assert.Len(t, resp.Checks, len(tt.statuses))
		})
	}
}

func TestCacheCheck(t *testing.T) {
	mem, err := cache.New(&config.CacheConfig{
		Enabled:    true,
		Type:       config.CacheTypeMemory,
		MaxEntries: 10,
		DefaultTTL: config.Duration(time.Minute),
	}, observability.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mem.Close()
	})

	check := CacheCheck(mem)(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)
}

func TestCacheCheckDisabled(t *testing.T) {
	disabled, err := cache.New(&config.CacheConfig{Enabled: false}, observability.NopLogger())
	require.NoError(t, err)

	check := CacheCheck(disabled)(context.Background())
	assert.Equal(t, StatusDegraded, check.Status)
	assert.Equal(t, "cache disabled", check.Message)
}

type fakeConn struct {
	state connectivity.State
}

func (f fakeConn) GetState() connectivity.State { return f.state }

func TestUpstreamCheck(t *testing.T) {
	tests := []struct {
		state connectivity.State
		want  Status
	}{
		{connectivity.Ready, StatusHealthy},
		{connectivity.Idle, StatusHealthy},
		{connectivity.Connecting, StatusHealthy},
		{connectivity.TransientFailure, StatusUnhealthy},
		{connectivity.Shutdown, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			check := UpstreamCheck(fakeConn{state: tt.state})(context.Background())
			assert.Equal(t, tt.want, check.Status)
		})
	}
}
