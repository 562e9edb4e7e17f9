package handlers

import (
	"net/http"

	"gymgrub_backend/internal/middleware"
	"gymgrub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes - plan catalog
	plans := r.Group("/plans")
	{
		plans.GET("", h.GetPlans)
	}

	// Protected routes - the caller's own subscription
	subscription := r.Group("/subscription")
	subscription.Use(middleware.AuthMiddleware())
	{
		subscription.GET("/status", h.GetStatus)
	}
}

// GetPlans godoc
// @Summary      Purchasable subscription plans
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.PlanListResponse
// @Router       /plans [get]
func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	resp, err := h.subscriptionService.GetPlans(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStatus godoc
// @Summary      Premium status of the authenticated user
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.SubscriptionStatusResponse
// @Failure      401 {object} apperrors.AppError
// @Security     BearerAuth
// @Router       /subscription/status [get]
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.GetStatus(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
