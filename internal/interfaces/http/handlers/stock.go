// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"github.com/your-org/cafe-backoffice/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// StockHandler handles branch stock and movement endpoints
type StockHandler struct {
	ledger *stock.Ledger
	config *config.Config
}

// NewStockHandler creates a new stock handler
func NewStockHandler(db *gorm.DB, cfg *config.Config) *StockHandler {
	return &StockHandler{
		ledger: stock.NewLedger(db, cfg),
		config: cfg,
	}
}

// SetStockRequest is the payload for direct stock adjustments
type SetStockRequest struct {
	Quantity     float64 `json:"quantity" binding:"min=0"`
	MovementType string  `json:"movement_type" binding:"required"`
	Notes        string  `json:"notes"`
}

// GetStock handles GET /stock/:branchId/:rawItemId
func (h *StockHandler) GetStock(c *gin.Context) {
	branchID, ok := parseIDParam(c, "branchId")
	if !ok {
		return
	}
	rawItemID, ok := parseIDParam(c, "rawItemId")
	if !ok {
		return
	}

	quantity, err := h.ledger.GetStock(branchID, rawItemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock level",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock level retrieved successfully",
		"data": gin.H{
			"branch_id":   branchID,
			"raw_item_id": rawItemID,
			"quantity":    quantity,
		},
	})
}

// SetStock handles PUT /stock/:branchId/:rawItemId
func (h *StockHandler) SetStock(c *gin.Context) {
	branchID, ok := parseIDParam(c, "branchId")
	if !ok {
		return
	}
	rawItemID, ok := parseIDParam(c, "rawItemId")
	if !ok {
		return
	}

	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	movementType := stock.MovementType(req.MovementType)
	if !movementType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid movement type: " + req.MovementType,
		})
		return
	}

	actor := middleware.GetActorFromContext(c)
	movement, err := h.ledger.SetStock(branchID, rawItemID, req.Quantity, actor, movementType, req.Notes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock level updated successfully",
		"data":    movement,
	})
}

// GetMovements handles GET /stock/:branchId/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	branchID, ok := parseIDParam(c, "branchId")
	if !ok {
		return
	}

	var rawItemID *uint
	if raw := c.Query("raw_item_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid raw_item_id parameter",
			})
			return
		}
		id := uint(value)
		rawItemID = &id
	}

	limit := h.config.Inventory.MovementLimit
	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = value
	}

	movements, err := h.ledger.Movements(branchID, rawItemID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock movements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock movements retrieved successfully",
		"data":    movements,
	})
}

// GetLowStock handles GET /stock/low
func (h *StockHandler) GetLowStock(c *gin.Context) {
	var branchID *uint
	if raw := c.Query("branch_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid branch_id parameter",
			})
			return
		}
		id := uint(value)
		branchID = &id
	}

	items, err := h.ledger.LowStockItems(branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve low stock items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Low stock items retrieved successfully",
		"data":    items,
	})
}

// GetAlerts handles GET /stock/:branchId/alerts
func (h *StockHandler) GetAlerts(c *gin.Context) {
	branchID, ok := parseIDParam(c, "branchId")
	if !ok {
		return
	}

	includeResolved := c.Query("include_resolved") == "true"
	alerts, err := h.ledger.Alerts(branchID, includeResolved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock alerts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock alerts retrieved successfully",
		"data":    alerts,
	})
}

// ResolveAlert handles POST /stock/alerts/:id/resolve
func (h *StockHandler) ResolveAlert(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ledger.ResolveAlert(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock alert resolved successfully",
	})
}
