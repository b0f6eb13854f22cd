package server

import (
	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/withdraw"
)

type withdrawHandler struct {
	svc *withdraw.Service
}

func registerWithdrawRoutes(g *gin.RouterGroup, svc *withdraw.Service) {
	h := withdrawHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/yearly-amounts", h.yearlyAmounts)
	g.GET("/card/:card_number", h.findByCardNumber)
	g.GET("/:id", h.findByID)

	g.POST("", h.create)
	g.PUT("/restore-all", h.restoreAll)
	g.PUT("/restore/:id", h.restore)
	g.PUT("/:id", h.update)
	g.DELETE("/permanent-all", h.deleteAllPermanent)
	g.DELETE("/permanent/:id", h.deletePermanent)
	g.DELETE("/:id", h.trash)
}

func (h withdrawHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), withdraw.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraws fetched", page)
}

func (h withdrawHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), withdraw.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active withdraws fetched", page)
}

func (h withdrawHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), withdraw.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed withdraws fetched", page)
}

func (h withdrawHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraw fetched", item)
}

func (h withdrawHandler) findByCardNumber(c *gin.Context) {
	cardNumber := c.Param("card_number")
	if cardNumber == "" {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid card_number parameter"))
		return
	}
	items, err := h.svc.FindByCardNumber(c.Request.Context(), cardNumber)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraws fetched", items)
}

func (h withdrawHandler) yearlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.YearlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly withdraw amounts fetched", amounts)
}

func (h withdrawHandler) create(c *gin.Context) {
	var req withdraw.CreateWithdrawRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "withdraw created", item)
}

func (h withdrawHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req withdraw.UpdateWithdrawRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraw updated", item)
}

func (h withdrawHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraw trashed", item)
}

func (h withdrawHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraw restored", item)
}

func (h withdrawHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "withdraw permanently deleted", deleted)
}

func (h withdrawHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed withdraws restored", restored)
}

func (h withdrawHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed withdraws permanently deleted", deleted)
}
