package store

import (
	"context"
	"time"
)

// OrderRecord captures the outcome of an order-creation call.
type OrderRecord struct {
	Receipt     string
	Currency    string
	AmountMinor int64
	CreatedAt   time.Time
}

// VerificationRecord captures the outcome of a signature verification.
type VerificationRecord struct {
	OrderID    string
	PaymentID  string
	Verified   bool
	VerifiedAt time.Time
}

// Store records payment activity. Implementations may persist records or
// keep them in memory; the services only depend on this interface.
type Store interface {
	RecordOrder(ctx context.Context, rec OrderRecord) error
	RecordVerification(ctx context.Context, rec VerificationRecord) error
}
