package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"woosync/internal/logger"
	"woosync/internal/models"
	"woosync/internal/services/attributes"
	"woosync/internal/store"
)

type AttributeHandler struct {
	store  store.Store
	groups *attributes.GroupResolver
	values *attributes.ValueResolver
	logger *logger.Logger
}

func NewAttributeHandler(st store.Store, groups *attributes.GroupResolver, values *attributes.ValueResolver, logger *logger.Logger) *AttributeHandler {
	return &AttributeHandler{
		store:  st,
		groups: groups,
		values: values,
		logger: logger,
	}
}

func (h *AttributeHandler) List(c *gin.Context) {
	taxonomies, err := h.store.AttributeTaxonomies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attributes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taxonomies})
}

func (h *AttributeHandler) Get(c *gin.Context) {
	code := c.Param("code")

	group, err := h.groups.GroupByCode(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attribute not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": group})
}

type createGroupRequest struct {
	Code  string            `json:"code" binding:"required"`
	Names map[string]string `json:"names" binding:"required"`
}

func (h *AttributeHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve before create so repeated submissions converge on the
	// existing group instead of a duplicate-slug rejection.
	existing, err := h.groups.GroupByCode(req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"data": existing})
		return
	}

	group, err := h.groups.AddGroup(req.Code, req.Names)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": group})
}

func (h *AttributeHandler) Terms(c *gin.Context) {
	code := c.Param("code")

	group, err := h.groups.GroupByCode(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attribute not found"})
		return
	}

	terms, err := h.store.TermsByTaxonomy(group.Taxonomy())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch terms"})
		return
	}
	if terms == nil {
		terms = []models.Term{}
	}

	c.JSON(http.StatusOK, gin.H{"data": terms})
}
