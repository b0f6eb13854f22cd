package server

import (
	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/transfer"
)

type transferHandler struct {
	svc *transfer.Service
}

func registerTransferRoutes(g *gin.RouterGroup, svc *transfer.Service) {
	h := transferHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/yearly-amounts", h.yearlyAmounts)
	g.GET("/from/:card_number", h.findByTransferFrom)
	g.GET("/to/:card_number", h.findByTransferTo)
	g.GET("/:id", h.findByID)

	g.POST("", h.create)
	g.PUT("/restore-all", h.restoreAll)
	g.PUT("/restore/:id", h.restore)
	g.PUT("/:id", h.update)
	g.DELETE("/permanent-all", h.deleteAllPermanent)
	g.DELETE("/permanent/:id", h.deletePermanent)
	g.DELETE("/:id", h.trash)
}

func (h transferHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), transfer.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfers fetched", page)
}

func (h transferHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), transfer.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active transfers fetched", page)
}

func (h transferHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), transfer.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed transfers fetched", page)
}

func (h transferHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfer fetched", item)
}

func (h transferHandler) findByTransferFrom(c *gin.Context) {
	cardNumber := c.Param("card_number")
	if cardNumber == "" {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid card_number parameter"))
		return
	}
	items, err := h.svc.FindByTransferFrom(c.Request.Context(), cardNumber)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfers fetched", items)
}

func (h transferHandler) findByTransferTo(c *gin.Context) {
	cardNumber := c.Param("card_number")
	if cardNumber == "" {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid card_number parameter"))
		return
	}
	items, err := h.svc.FindByTransferTo(c.Request.Context(), cardNumber)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfers fetched", items)
}

func (h transferHandler) yearlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.YearlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly transfer amounts fetched", amounts)
}

func (h transferHandler) create(c *gin.Context) {
	var req transfer.CreateTransferRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "transfer created", item)
}

func (h transferHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transfer.UpdateTransferRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfer updated", item)
}

func (h transferHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfer trashed", item)
}

func (h transferHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfer restored", item)
}

func (h transferHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "transfer permanently deleted", deleted)
}

func (h transferHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed transfers restored", restored)
}

func (h transferHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed transfers permanently deleted", deleted)
}
