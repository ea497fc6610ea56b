package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-service/clock"
	"checkout-service/logging"
	"checkout-service/models"
	"checkout-service/monitoring"
	"checkout-service/signature"
	"checkout-service/store"
)

// VerifyService checks payment signatures against the processor key secret.
type VerifyService struct {
	tracer trace.Tracer
	secret string
	store  store.Store
	clock  clock.Clock
}

// NewVerifyService creates a new verification service
func NewVerifyService(tracer trace.Tracer, secret string, st store.Store, clk clock.Clock) *VerifyService {
	return &VerifyService{
		tracer: tracer,
		secret: secret,
		store:  st,
		clock:  clk,
	}
}

// VerifyPayment validates the request fields and compares the supplied
// signature to the expected HMAC digest. The computed digest is never
// returned to the caller.
func (s *VerifyService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) error {
	ctx, span := s.tracer.Start(ctx, "verify_payment")
	defer span.End()

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return ErrInvalidPaymentDetails
	}

	span.SetAttributes(
		attribute.String("payment.order_id", req.RazorpayOrderID),
		attribute.String("payment.payment_id", req.RazorpayPaymentID),
	)

	ok := signature.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.secret)

	if err := s.store.RecordVerification(ctx, store.VerificationRecord{
		OrderID:    req.RazorpayOrderID,
		PaymentID:  req.RazorpayPaymentID,
		Verified:   ok,
		VerifiedAt: s.clock.Now(),
	}); err != nil {
		return fmt.Errorf("record verification: %w", err)
	}

	status := "success"
	if !ok {
		status = "failed"
	}
	monitoring.VerificationCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
	span.SetAttributes(attribute.Bool("payment.verified", ok))

	if !ok {
		logger := logging.WithTraceContext(span)
		logger.Warn("Payment verification failed",
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID),
		)
		return ErrVerificationFailed
	}

	return nil
}
