package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transaction"
)

type transactionHandler struct {
	svc *transaction.Service
}

func registerTransactionRoutes(g *gin.RouterGroup, svc *transaction.Service) {
	h := transactionHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/monthly-amounts", h.monthlyAmounts)
	g.GET("/yearly-amounts", h.yearlyAmounts)
	g.GET("/merchant/:merchant_id", h.findByMerchantID)
	g.GET("/:id", h.findByID)

	g.POST("", h.create)
	g.PUT("/restore-all", h.restoreAll)
	g.PUT("/restore/:id", h.restore)
	g.PUT("/:id", h.update)
	g.DELETE("/permanent-all", h.deleteAllPermanent)
	g.DELETE("/permanent/:id", h.deletePermanent)
	g.DELETE("/:id", h.trash)
}

func (h transactionHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), transaction.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transactions fetched", page)
}

func (h transactionHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), transaction.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active transactions fetched", page)
}

func (h transactionHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), transaction.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed transactions fetched", page)
}

func (h transactionHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transaction fetched", item)
}

func (h transactionHandler) findByMerchantID(c *gin.Context) {
	merchantID, err := strconv.Atoi(c.Param("merchant_id"))
	if err != nil || merchantID <= 0 {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid merchant_id parameter"))
		return
	}
	items, err := h.svc.FindByMerchantID(c.Request.Context(), merchantID)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transactions fetched", items)
}

func (h transactionHandler) monthlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.MonthlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "monthly transaction amounts fetched", amounts)
}

func (h transactionHandler) yearlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.YearlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly transaction amounts fetched", amounts)
}

func (h transactionHandler) create(c *gin.Context) {
	var req transaction.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "transaction created", item)
}

func (h transactionHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transaction.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transaction updated", item)
}

func (h transactionHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transaction trashed", item)
}

func (h transactionHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transaction restored", item)
}

func (h transactionHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transaction permanently deleted", deleted)
}

func (h transactionHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed transactions restored", restored)
}

func (h transactionHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed transactions permanently deleted", deleted)
}
