package handlers

import (
	"net/http"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.POST("/strength", h.AnalyzeStrength)
	}
}

// AnalyzeStrength godoc
// @Summary      Strength session analysis (1RM, volume, warm-up ladder)
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request body dto.StrengthRequest true "Logged sets"
// @Success      200 {object} dto.StrengthResponse
// @Failure      400 {object} apperrors.AppError
// @Router       /analytics/strength [post]
func (h *AnalyticsHandler) AnalyzeStrength(c *gin.Context) {
	var req dto.StrengthRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.analyticsService.AnalyzeStrength(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
