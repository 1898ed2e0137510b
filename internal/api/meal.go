package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/internal/service"
	"github.com/pageza/glycemic-assist/backend/internal/types"
)

type MealHandler struct {
	mealService service.IMealService
}

func NewMealHandler(mealService service.IMealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
	}
}

// RegisterRoutes mounts the meal endpoints on router, behind middlewares
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	meals := router.Group("/meals")
	meals.Use(middlewares...)
	{
		meals.POST("/glycemic-index", h.ProcessMeal)
	}
}

// ProcessMeal estimates the glycemic index of a meal and suggests how to lower it
func (h *MealHandler) ProcessMeal(c *gin.Context) {
	var req types.ProcessMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredients are required"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.mealService.ProcessMeal(ctx, req.Ingredients)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to process meal")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "food dataset is unavailable"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
