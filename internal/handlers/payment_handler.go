package handlers

import (
	"net/http"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/middleware"
	"gymgrub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payment := r.Group("/payment")
	{
		payment.POST("/create-invoice", middleware.AuthMiddleware(), h.CreateInvoice)
		// No auth: paymentIds are opaque and the response carries no user
		// data, so polling tools can hit this directly.
		payment.GET("/status/:paymentId", h.GetStatus)
	}
}

// CreateInvoice godoc
// @Summary      Create a Lightning invoice for a subscription purchase
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateInvoiceRequest true "Plan and amount"
// @Success      201 {object} dto.CreateInvoiceResponse
// @Failure      400 {object} apperrors.AppError
// @Failure      401 {object} apperrors.AppError
// @Failure      500 {object} apperrors.AppError
// @Security     BearerAuth
// @Router       /payment/create-invoice [post]
func (h *PaymentHandler) CreateInvoice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.UserID = userID

	resp, err := h.paymentService.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetStatus godoc
// @Summary      Current status of a payment, advancing it when settled
// @Tags         payment
// @Produce      json
// @Param        paymentId path string true "Payment identifier"
// @Success      200 {object} dto.PaymentStatusResponse
// @Router       /payment/status/{paymentId} [get]
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	paymentID := c.Param("paymentId")

	resp, err := h.paymentService.CheckStatus(c.Request.Context(), paymentID)
	if err != nil {
		// CheckStatus is written to degrade rather than fail; treat an
		// error here as an internal bug.
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
