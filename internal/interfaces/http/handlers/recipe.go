// internal/interfaces/http/handlers/recipe.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe line endpoints
type RecipeHandler struct {
	recipeService *recipe.Service
	config        *config.Config
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipe.NewService(db, redisClient, cfg),
		config:        cfg,
	}
}

// AddLine handles POST /recipes/lines
func (h *RecipeHandler) AddLine(c *gin.Context) {
	var req recipe.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	line, err := h.recipeService.AddLine(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe line added successfully",
		"data":    line,
	})
}

// RemoveLine handles DELETE /recipes/lines/:id
func (h *RecipeHandler) RemoveLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.RemoveLine(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe line removed successfully",
	})
}

// ListLines handles GET /recipes/:menuItemId
func (h *RecipeHandler) ListLines(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "menuItemId")
	if !ok {
		return
	}

	lines, err := h.recipeService.ListLines(menuItemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recipe lines",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe lines retrieved successfully",
		"data":    lines,
	})
}

// ListAllLines handles GET /recipes
func (h *RecipeHandler) ListAllLines(c *gin.Context) {
	lines, err := h.recipeService.ListAllLines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recipe lines",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe lines retrieved successfully",
		"data":    lines,
	})
}

// ApplyTemplateRequest is the payload for bulk recipe creation
type ApplyTemplateRequest struct {
	Lines []recipe.TemplateLine `json:"lines" binding:"required,min=1"`
}

// ApplyTemplate handles POST /recipes/:menuItemId/template
func (h *RecipeHandler) ApplyTemplate(c *gin.Context) {
	menuItemID, ok := parseIDParam(c, "menuItemId")
	if !ok {
		return
	}

	var req ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.recipeService.ApplyTemplate(menuItemID, req.Lines)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe template applied",
		"data":    result,
	})
}
