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

// ObjectHandler exposes the generic object interface the sync protocol
// speaks: the registered object types, their field schemas, and uniform
// list/get/set/delete over any of them.
type ObjectHandler struct {
	registry *splash.Registry
	logger   *logger.Logger
}

func NewObjectHandler(registry *splash.Registry, logger *logger.Logger) *ObjectHandler {
	return &ObjectHandler{
		registry: registry,
		logger:   logger,
	}
}

func (h *ObjectHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.registry.Types()})
}

func (h *ObjectHandler) Fields(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": obj.Fields()})
}

func (h *ObjectHandler) List(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	rows, total, err := obj.List(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list objects"})
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

func (h *ObjectHandler) Get(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	row, err := obj.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, variants.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch object"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (h *ObjectHandler) Create(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := obj.Set("", data)
	if err != nil {
		h.logger.Error("api: %s create failed: %v", obj.Type(), err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": id}})
}

func (h *ObjectHandler) Update(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := obj.Set(c.Param("id"), data)
	if err != nil {
		if errors.Is(err, variants.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
			return
		}
		h.logger.Error("api: %s update failed: %v", obj.Type(), err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
}

func (h *ObjectHandler) Delete(c *gin.Context) {
	obj, err := h.registry.Object(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := obj.Delete(c.Param("id")); err != nil {
		if errors.Is(err, variants.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete object"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
