package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MamangRust/example-payment-gateway-sqlx-sub000/internal/errmap"
)

// successResponse is the envelope for every successful API response.
type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, successResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, successResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// pathID parses the :id path parameter. On failure it renders a 400 and
// returns false.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid id parameter"))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errmap.Render(c, errmap.Newf(errmap.KindValidation, "invalid %s parameter", name))
		return 0, false
	}
	return v, true
}

// yearParam parses the required year query parameter.
func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid year parameter"))
		return 0, false
	}
	return year, true
}

type pageParams struct {
	Page     int
	PageSize int
	Search   string
}

// listQuery parses pagination query parameters with sane defaults and
// bounds.
func listQuery(c *gin.Context) (pageParams, bool) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return pageParams{}, false
	}
	pageSize, ok := queryInt(c, "page_size", 10)
	if !ok {
		return pageParams{}, false
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return pageParams{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}, true
}

// bindJSON decodes the request body. On failure it renders a 400 and
// returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		errmap.Render(c, errmap.New(errmap.KindValidation, "invalid request body"))
		return false
	}
	return true
}
