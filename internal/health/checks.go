package health

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/connectivity"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/cache"
)

const probeKey = "health:probe"

// CacheCheck probes the cache backend with a short write/read round trip.
// A disabled cache is degraded, not unhealthy: the gateway still serves
// by calling upstreams directly.
func CacheCheck(c cache.Cache) CheckFunc {
	return func(ctx context.Context) Check {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := c.Set(ctx, probeKey, []byte("ok"), 10*time.Second); err != nil {
			if errors.Is(err, cache.ErrCacheDisabled) {
				return Check{Status: StatusDegraded, Message: "cache disabled"}
			}
			return Check{Status: StatusDegraded, Message: err.Error()}
		}
		if _, err := c.Get(ctx, probeKey); err != nil {
			return Check{Status: StatusDegraded, Message: err.Error()}
		}
		return Check{Status: StatusHealthy}
	}
}

// ConnState is the subset of grpc.ClientConn used by UpstreamCheck.
type ConnState interface {
	GetState() connectivity.State
}

// UpstreamCheck probes a gRPC connection by channel state. Connections
// dial lazily, so Idle and Connecting are healthy; only a transient
// failure or a shut down channel marks the upstream unhealthy.
func UpstreamCheck(conn ConnState) CheckFunc {
	return func(_ context.Context) Check {
		state := conn.GetState()
		switch state {
		case connectivity.Ready, connectivity.Idle, connectivity.Connecting:
			return Check{Status: StatusHealthy, Message: state.String()}
		default:
			return Check{Status: StatusUnhealthy, Message: state.String()}
		}
	}
}
