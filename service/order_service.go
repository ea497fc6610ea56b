package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-service/clock"
	"checkout-service/logging"
	"checkout-service/models"
	"checkout-service/monitoring"
	"checkout-service/processor"
	"checkout-service/store"
)

// minorUnitFactor converts major to minor units. Assumes two-decimal
// currencies (paise for INR, cents for USD).
const minorUnitFactor = 2

// OrderService validates order requests and delegates creation to the
// payment processor.
type OrderService struct {
	tracer    trace.Tracer
	processor processor.Client
	store     store.Store
	clock     clock.Clock
}

// NewOrderService creates a new order service
func NewOrderService(tracer trace.Tracer, proc processor.Client, st store.Store, clk clock.Clock) *OrderService {
	return &OrderService{
		tracer:    tracer,
		processor: proc,
		store:     st,
		clock:     clk,
	}
}

// CreateOrder validates the request, converts the amount to minor units and
// submits the order to the processor, relaying its order object verbatim.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (json.RawMessage, error) {
	ctx, span := s.tracer.Start(ctx, "create_order")
	defer span.End()

	if req.Amount == nil || req.Currency == "" {
		return nil, ErrMissingFields
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	amountMinor := amount.Shift(minorUnitFactor).Round(0).IntPart()
	receipt := newReceipt(s.clock.Now())

	span.SetAttributes(
		attribute.Int64("order.amount_minor", amountMinor),
		attribute.String("order.currency", req.Currency),
		attribute.String("order.receipt", receipt),
	)

	logger := logging.WithTraceContext(span)
	logger.Info("Creating order",
		zap.Int64("amount_minor", amountMinor),
		zap.String("currency", req.Currency),
		zap.String("receipt", receipt),
	)

	start := time.Now()
	order, err := s.processor.CreateOrder(ctx, models.ProcessorOrderRequest{
		Amount:   amountMinor,
		Currency: req.Currency,
		Receipt:  receipt,
	})
	monitoring.ProcessorDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("status", statusLabel(err == nil))),
	)
	if err != nil {
		logger.Error("Order creation failed",
			zap.Error(err),
			zap.String("currency", req.Currency),
			zap.String("receipt", receipt),
		)
		monitoring.OrderCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("status", "failed")),
		)
		span.SetAttributes(attribute.String("order.status", "failed"))
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.store.RecordOrder(ctx, store.OrderRecord{
		Receipt:     receipt,
		Currency:    req.Currency,
		AmountMinor: amountMinor,
		CreatedAt:   s.clock.Now(),
	}); err != nil {
		logger.Warn("Failed to record order outcome", zap.Error(err))
	}

	monitoring.OrderCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", "success")),
	)
	monitoring.OrderAmount.Record(ctx, amountMinor,
		metric.WithAttributes(attribute.String("currency", req.Currency)),
	)
	span.SetAttributes(attribute.String("order.status", "success"))

	return order, nil
}

// parseAmount accepts the JSON number or string form of the amount and
// rejects anything that is not a finite positive decimal.
func parseAmount(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, fmt.Errorf("amount is not finite")
		}
		d := decimal.NewFromFloat(v)
		if !d.IsPositive() {
			return decimal.Decimal{}, fmt.Errorf("amount must be positive")
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parse amount: %w", err)
		}
		if !d.IsPositive() {
			return decimal.Decimal{}, fmt.Errorf("amount must be positive")
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parse amount: %w", err)
		}
		if !d.IsPositive() {
			return decimal.Decimal{}, fmt.Errorf("amount must be positive")
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("amount has unsupported type %T", value)
	}
}

// newReceipt derives a receipt identifier from the current time plus a
// random suffix so concurrent calls within the same millisecond cannot
// collide.
func newReceipt(now time.Time) string {
	return fmt.Sprintf("receipt_order_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

func statusLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
