package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-service/logging"
	"checkout-service/models"
	"checkout-service/service"
)

// PaymentHandler handles HTTP requests for orders and verifications
type PaymentHandler struct {
	orderService  *service.OrderService
	verifyService *service.VerifyService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService *service.OrderService, verifyService *service.VerifyService) *PaymentHandler {
	return &PaymentHandler{
		orderService:  orderService,
		verifyService: verifyService,
	}
}

// CreateOrder handles POST /create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{
			Success: false,
			Message: "Amount and currency are required",
		})
		return
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, models.MessageResponse{
				Success: false,
				Message: "Amount and currency are required",
			})
		case errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, models.MessageResponse{
				Success: false,
				Message: "Amount must be a valid number",
			})
		default:
			logger := logging.WithTraceContext(span)
			logger.Error("Order creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.MessageResponse{
				Success: false,
				Message: "Unable to create order",
			})
		}
		return
	}

	span.AddEvent("order_created")
	c.JSON(http.StatusOK, models.CreateOrderResponse{
		Success: true,
		Order:   order,
	})
}

// VerifyPayment handles POST /verify-payment
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{
			Success: false,
			Message: "Invalid payment details",
		})
		return
	}

	err := h.verifyService.VerifyPayment(ctx, &req)
	switch {
	case err == nil:
		span.AddEvent("payment_verified")
		c.JSON(http.StatusOK, models.MessageResponse{
			Success: true,
			Message: "Payment verified successfully",
		})
	case errors.Is(err, service.ErrInvalidPaymentDetails):
		c.JSON(http.StatusBadRequest, models.MessageResponse{
			Success: false,
			Message: "Invalid payment details",
		})
	case errors.Is(err, service.ErrVerificationFailed):
		c.JSON(http.StatusBadRequest, models.MessageResponse{
			Success: false,
			Message: "Payment verification failed",
		})
	default:
		logger := logging.WithTraceContext(span)
		logger.Error("Payment verification errored", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.MessageResponse{
			Success: false,
			Message: "Server error in payment verification",
		})
	}
}

// HealthCheck handles health check requests
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// NotFound returns the uniform 404 body for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.MessageResponse{
		Success: false,
		Message: "API route not found",
	})
}

// Recovery maps panics to the uniform 500 body. The panic value is logged
// server-side only.
func Recovery(c *gin.Context, err any) {
	logging.Error("Unhandled panic in request handler",
		zap.Any("panic", err),
		zap.String("path", c.Request.URL.Path),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.MessageResponse{
		Success: false,
		Message: "Something went wrong! Please try again later.",
	})
}
