package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"woosync/internal/connectors/splash"
	"woosync/internal/logger"
	"woosync/internal/services/variants"
)

type OrderHandler struct {
	obj    *splash.OrderObject
	logger *logger.Logger
}

func NewOrderHandler(obj *splash.OrderObject, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{obj: obj, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	rows, total, err := h.obj.List(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")

	row, err := h.obj.Get(id)
	if err != nil {
		if errors.Is(err, variants.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}
