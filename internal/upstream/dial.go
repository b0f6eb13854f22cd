package upstream

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/config"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/observability"
)

// Conns holds one client connection per upstream service, keyed by
// service name.
type Conns struct {
	conns map[string]*grpc.ClientConn
}

// Dial opens a client connection to every configured upstream service.
// Connections are lazy; a service that is down at startup surfaces on the
// first call, not here.
func Dial(cfg *config.UpstreamConfig, logger observability.Logger) (*Conns, error) {
	conns := make(map[string]*grpc.ClientConn, len(cfg.Services))

	for name, addr := range cfg.Services {
		conn, err := grpc.NewClient(addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			closeAll(conns)
			return nil, fmt.Errorf("dial upstream %s at %s: %w", name, addr, err)
		}
		conns[name] = conn

		logger.Info("upstream connection created",
			observability.String("service", name),
			observability.String("address", addr))
	}

	return &Conns{conns: conns}, nil
}

// Get returns the connection for the named service, or nil if the service
// is not configured.
func (c *Conns) Get(name string) *grpc.ClientConn {
	return c.conns[name]
}

// Close closes every connection. The last error wins; individual close
// failures are rare and non-actionable.
func (c *Conns) Close() error {
	var lastErr error
	for name, conn := range c.conns {
		if err := conn.Close(); err != nil {
			lastErr = fmt.Errorf("close upstream %s: %w", name, err)
		}
	}
	return lastErr
}

func closeAll(conns map[string]*grpc.ClientConn) {
	for _, conn := range conns {
		_ = conn.Close()
	}
}
