package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/merchant"
)

type merchantHandler struct {
	svc *merchant.Service
}

func registerMerchantRoutes(g *gin.RouterGroup, svc *merchant.Service) {
	h := merchantHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/monthly-payment-methods", h.monthlyPaymentMethods)
	g.GET("/yearly-payment-methods", h.yearlyPaymentMethods)
	g.GET("/api-key/:api_key", h.findByAPIKey)
	g.GET("/user/:user_id", h.findByUserID)
	g.GET("/:id", h.findByID)

	g.POST("", h.create)
	g.PUT("/restore-all", h.restoreAll)
	g.PUT("/restore/:id", h.restore)
	g.PUT("/:id", h.update)
	g.DELETE("/permanent-all", h.deleteAllPermanent)
	g.DELETE("/permanent/:id", h.deletePermanent)
	g.DELETE("/:id", h.trash)
}

func (h merchantHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), merchant.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchants fetched", page)
}

func (h merchantHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), merchant.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active merchants fetched", page)
}

func (h merchantHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), merchant.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed merchants fetched", page)
}

func (h merchantHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant fetched", item)
}

func (h merchantHandler) findByAPIKey(c *gin.Context) {
	apiKey := c.Param("api_key")
	if apiKey == "" {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid api_key parameter"))
		return
	}
	item, err := h.svc.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant fetched", item)
}

func (h merchantHandler) findByUserID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid user_id parameter"))
		return
	}
	items, err := h.svc.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchants fetched", items)
}

func (h merchantHandler) monthlyPaymentMethods(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	methods, err := h.svc.MonthlyPaymentMethods(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "monthly payment methods fetched", methods)
}

func (h merchantHandler) yearlyPaymentMethods(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	methods, err := h.svc.YearlyPaymentMethods(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly payment methods fetched", methods)
}

func (h merchantHandler) create(c *gin.Context) {
	var req merchant.CreateMerchantRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "merchant created", item)
}

func (h merchantHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req merchant.UpdateMerchantRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant updated", item)
}

func (h merchantHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant trashed", item)
}

func (h merchantHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant restored", item)
}

func (h merchantHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "merchant permanently deleted", deleted)
}

func (h merchantHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed merchants restored", restored)
}

func (h merchantHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed merchants permanently deleted", deleted)
}
