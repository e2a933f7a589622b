// internal/interfaces/http/handlers/reports.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/reporting"
	"github.com/your-org/cafe-backoffice/internal/pkg/pdf"
	"gorm.io/gorm"
)

// ReportsHandler handles COGS and margin reporting endpoints
type ReportsHandler struct {
	reportingService *reporting.Service
	pdfService       *pdf.Service
	config           *config.Config
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{
		reportingService: reporting.NewService(db, redisClient, cfg),
		pdfService:       pdf.NewService(cfg),
		config:           cfg,
	}
}

// GetCOGSSummary handles GET /reports/cogs
func (h *ReportsHandler) GetCOGSSummary(c *gin.Context) {
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

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from date, expected YYYY-MM-DD",
			})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to date, expected YYYY-MM-DD",
			})
			return
		}
		// include the whole end day
		to = parsed.AddDate(0, 0, 1)
	}

	summary, err := h.reportingService.COGSSummary(branchID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build COGS summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "COGS summary retrieved successfully",
		"data":    summary,
	})
}

// GetMarginTable handles GET /reports/margins
func (h *ReportsHandler) GetMarginTable(c *gin.Context) {
	rows, err := h.reportingService.MarginTable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build margin table",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Margin table retrieved successfully",
		"data":    rows,
	})
}

// DownloadMarginReport handles GET /reports/margins/pdf
func (h *ReportsHandler) DownloadMarginReport(c *gin.Context) {
	rows, err := h.reportingService.MarginTable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build margin table",
		})
		return
	}

	buf, err := h.pdfService.GenerateMarginReport(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate margin report PDF",
		})
		return
	}

	filename := fmt.Sprintf("margin-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetLowStockReport handles GET /reports/low-stock
func (h *ReportsHandler) GetLowStockReport(c *gin.Context) {
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

	items, err := h.reportingService.LowStock(branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve low stock report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Low stock report retrieved successfully",
		"data":    items,
	})
}
