package server

import (
	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/service/topup"
)

type topupHandler struct {
	svc *topup.Service
}

func registerTopupRoutes(g *gin.RouterGroup, svc *topup.Service) {
	h := topupHandler{svc: svc}

	g.GET("", h.findAll)
	g.GET("/active", h.findActive)
	g.GET("/trashed", h.findTrashed)
	g.GET("/monthly-amounts", h.monthlyAmounts)
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

func (h topupHandler) findAll(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindAll(c.Request.Context(), topup.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topups fetched", page)
}

func (h topupHandler) findActive(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindActive(c.Request.Context(), topup.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "active topups fetched", page)
}

func (h topupHandler) findTrashed(c *gin.Context) {
	params, ok := listQuery(c)
	if !ok {
		return
	}
	page, err := h.svc.FindTrashed(c.Request.Context(), topup.ListParams(params))
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "trashed topups fetched", page)
}

func (h topupHandler) findByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topup fetched", item)
}

func (h topupHandler) findByCardNumber(c *gin.Context) {
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
	respondOK(c, "topups fetched", items)
}

func (h topupHandler) monthlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.MonthlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "monthly topup amounts fetched", amounts)
}

func (h topupHandler) yearlyAmounts(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	amounts, err := h.svc.YearlyAmounts(c.Request.Context(), year)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "yearly topup amounts fetched", amounts)
}

func (h topupHandler) create(c *gin.Context) {
	var req topup.CreateTopupRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondCreated(c, "topup created", item)
}

func (h topupHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req topup.UpdateTopupRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	item, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topup updated", item)
}

func (h topupHandler) trash(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Trash(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topup trashed", item)
}

func (h topupHandler) restore(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topup restored", item)
}

func (h topupHandler) deletePermanent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeletePermanent(c.Request.Context(), id)
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "topup permanently deleted", deleted)
}

func (h topupHandler) restoreAll(c *gin.Context) {
	restored, err := h.svc.RestoreAll(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed topups restored", restored)
}

func (h topupHandler) deleteAllPermanent(c *gin.Context) {
	deleted, err := h.svc.DeleteAllPermanent(c.Request.Context())
	if err != nil {
		errmap.Render(c, err)
		return
	}
	respondOK(c, "all trashed topups permanently deleted", deleted)
}
