// internal/interfaces/http/handlers/costing.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/costing"
	"github.com/your-org/cafe-backoffice/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CostingHandler handles cost calculation and order deduction endpoints
type CostingHandler struct {
	engine     *costing.Engine
	calculator *costing.Calculator
	config     *config.Config
}

// NewCostingHandler creates a new costing handler
func NewCostingHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CostingHandler {
	return &CostingHandler{
		engine:     costing.NewEngine(db, cfg),
		calculator: costing.NewCalculator(db, redisClient, cfg),
		config:     cfg,
	}
}

// DeductOrderRequest is the payload for applying an order's consumption
// to branch stock
type DeductOrderRequest struct {
	OrderID  string              `json:"order_id" binding:"required"`
	BranchID uint                `json:"branch_id" binding:"required"`
	Lines    []costing.OrderLine `json:"lines" binding:"required,min=1"`
}

// DeductOrder handles POST /costing/deduct
func (h *CostingHandler) DeductOrder(c *gin.Context) {
	var req DeductOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	actor := middleware.GetActorFromContext(c)
	result, err := h.engine.DeductForOrder(req.OrderID, req.BranchID, req.Lines, actor)
	if err != nil && result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Shortages and partial infrastructure failures are reported in the
	// result body, never as a failed request.
	c.JSON(http.StatusOK, gin.H{
		"message": "Order deduction processed",
		"data":    result,
	})
}

// GetItemCost handles GET /costing/items/:menuItemId
func (h *CostingHandler) GetItemCost(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "menuItemId")
	if !ok {
		return
	}

	cost, err := h.calculator.CalculateCost(menuItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item cost calculated successfully",
		"data":    cost,
	})
}

// PreviewOrderRequest is the payload for a non-mutating order cost preview
type PreviewOrderRequest struct {
	Lines []costing.OrderLine `json:"lines" binding:"required,min=1"`
}

// PreviewOrderCOGS handles POST /costing/preview
func (h *CostingHandler) PreviewOrderCOGS(c *gin.Context) {
	var req PreviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

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

	preview, err := h.calculator.CalculateOrderCOGS(req.Lines, branchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cost preview calculated successfully",
		"data":    preview,
	})
}
