// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler handles branch, raw-item and menu-item endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db, redisClient, cfg),
		config:         cfg,
	}
}

// BRANCH ENDPOINTS

// CreateBranch handles POST /branches
func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req catalog.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	branch, err := h.catalogService.CreateBranch(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully",
		"data":    branch,
	})
}

// GetBranches handles GET /branches
func (h *CatalogHandler) GetBranches(c *gin.Context) {
	branches, err := h.catalogService.GetBranches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve branches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branches retrieved successfully",
		"data":    branches,
	})
}

// GetBranch handles GET /branches/:id
func (h *CatalogHandler) GetBranch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	branch, err := h.catalogService.GetBranch(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch retrieved successfully",
		"data":    branch,
	})
}

// RAW ITEM ENDPOINTS

// CreateRawItem handles POST /raw-items
func (h *CatalogHandler) CreateRawItem(c *gin.Context) {
	var req catalog.CreateRawItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.CreateRawItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Raw item created successfully",
		"data":    item,
	})
}

// GetRawItems handles GET /raw-items
func (h *CatalogHandler) GetRawItems(c *gin.Context) {
	items, err := h.catalogService.GetRawItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve raw items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Raw items retrieved successfully",
		"data":    items,
	})
}

// GetRawItem handles GET /raw-items/:id
func (h *CatalogHandler) GetRawItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetRawItem(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Raw item retrieved successfully",
		"data":    item,
	})
}

// GetRawItemByCode handles GET /raw-items/code/:code
func (h *CatalogHandler) GetRawItemByCode(c *gin.Context) {
	item, err := h.catalogService.GetRawItemByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Raw item retrieved successfully",
		"data":    item,
	})
}

// UpdateRawItem handles PUT /raw-items/:id
func (h *CatalogHandler) UpdateRawItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateRawItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.UpdateRawItem(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Raw item updated successfully",
		"data":    item,
	})
}

// DeleteRawItem handles DELETE /raw-items/:id
func (h *CatalogHandler) DeleteRawItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteRawItem(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Raw item deleted successfully",
	})
}

// MENU ITEM ENDPOINTS

// CreateMenuItem handles POST /menu-items
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req catalog.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.CreateMenuItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// GetMenuItems handles GET /menu-items
func (h *CatalogHandler) GetMenuItems(c *gin.Context) {
	items, err := h.catalogService.GetMenuItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu items retrieved successfully",
		"data":    items,
	})
}

// GetMenuItem handles GET /menu-items/:id
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetMenuItem(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /menu-items/:id
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.UpdateMenuItem(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMenuItem(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}

// parseIDParam parses a numeric path parameter, writing the error response
// itself on failure
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(value), true
}
