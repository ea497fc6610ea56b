package models

import "encoding/json"

// CreateOrderRequest represents an incoming order-creation request.
// Amount is decoded loosely so missing fields and non-numeric values
// can be rejected with distinct error messages.
type CreateOrderRequest struct {
	Amount   any    `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrderResponse relays the processor's order object verbatim.
type CreateOrderResponse struct {
	Success bool            `json:"success"`
	Order   json.RawMessage `json:"order"`
}

// VerifyPaymentRequest represents a payment verification request.
type VerifyPaymentRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// MessageResponse is the uniform success/error envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProcessorOrderRequest represents an order-creation request to the
// external payment processor, with the amount in minor units.
type ProcessorOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
