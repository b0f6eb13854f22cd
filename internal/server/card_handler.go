package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/card"
)

type cardHandler struct {
	svc *card.Service
}

func registerCardRoutes(g *gin.RouterGroup, svc *card.Service) {
	h := cardHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/dashboard", h.dashboard)
	g.GET("/monthly-balance", h.monthlyBalance)
	g.GET("/yearly-balance", h.yearlyBalance)
	g.GET("/user/:user_id", h.findByUserID)
	g.GET("/number/:card_number", h.findByCardNumber)
	g.GET("/:id", h.findByID)

	g.POST("", h.create)
	g.PUT("/restore-all", h.restoreAll)
	g.PUT("/restore/:id", h.restore)
	g.PUT("/:id", h.update)
	g.DELETE("/permanent-all", h.deleteAllPermanent)
	g.DELETE("/permanent/:id", h.deletePermanent)
	g.DELETE("/:id", h.trash)
}

func (h cardHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), card.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "cards fetched", page)
}

func (h cardHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), card.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active cards fetched", page)
}

func (h cardHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), card.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed cards fetched", page)
}

func (h cardHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card fetched", item)
}

func (h cardHandler) findByUserID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid user_id parameter"))
		return
	}
	item, err := h.svc.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card fetched", item)
}

func (h cardHandler) findByCardNumber(c *gin.Context) {
	cardNumber := c.Param("card_number")
	if cardNumber == "" {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid card_number parameter"))
		return
	}
	item, err := h.svc.FindByCardNumber(c.Request.Context(), cardNumber)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card fetched", item)
}

func (h cardHandler) dashboard(c *gin.Context) {
	totals, err := h.svc.DashboardTotals(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card dashboard fetched", totals)
}

func (h cardHandler) monthlyBalance(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	balances, err := h.svc.MonthlyBalance(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "monthly card balance fetched", balances)
}

func (h cardHandler) yearlyBalance(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	balances, err := h.svc.YearlyBalance(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly card balance fetched", balances)
}

func (h cardHandler) create(c *gin.Context) {
	var req card.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "card created", item)
}

func (h cardHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req card.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card updated", item)
}

func (h cardHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card trashed", item)
}

func (h cardHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card restored", item)
}

func (h cardHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "card permanently deleted", deleted)
}

func (h cardHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed cards restored", restored)
}

func (h cardHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed cards permanently deleted", deleted)
}
