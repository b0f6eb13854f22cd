package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/health"
)

func (s *Server) registerRoutes(opts Options) {
	if opts.Checker != nil {
		s.registerProbes(opts.Checker)
	}

	api := s.engine.Group("/api")

	if opts.Services.Card != nil {
		registerCardRoutes(api.Group("/cards"), opts.Services.Card)
	}
	if opts.Services.Merchant != nil {
		registerMerchantRoutes(api.Group("/merchants"), opts.Services.Merchant)
	}
	if opts.Services.Topup != nil {
		registerTopupRoutes(api.Group("/topups"), opts.Services.Topup)
	}
	if opts.Services.Transaction != nil {
		registerTransactionRoutes(api.Group("/transactions"), opts.Services.Transaction)
	}
	if opts.Services.Transfer != nil {
		registerTransferRoutes(api.Group("/transfers"), opts.Services.Transfer)
	}
	if opts.Services.Withdraw != nil {
		registerWithdrawRoutes(api.Group("/withdraws"), opts.Services.Withdraw)
	}
}

func (s *Server) registerProbes(checker *health.Checker) {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Health())
	})

	s.engine.GET("/readyz", func(c *gin.Context) {
		resp := checker.Readiness(c.Request.Context())
		status := http.StatusOK
		if resp.Status == health.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	})
}
