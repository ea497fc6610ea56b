package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"checkout-service/clock"
	"checkout-service/logging"
	"checkout-service/models"
	"checkout-service/monitoring"
	"checkout-service/service"
	"checkout-service/signature"
	"checkout-service/store"
)

const testSecret = "s3cr3t"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.InitNop()
	monitoring.InitNoop()
	os.Exit(m.Run())
}

type stubProcessor struct {
	order json.RawMessage
	err   error
}

func (s *stubProcessor) CreateOrder(_ context.Context, _ models.ProcessorOrderRequest) (json.RawMessage, error) {
	return s.order, s.err
}

func newTestRouter(proc *stubProcessor) *gin.Engine {
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	clk := clock.NewFixed(time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC))
	outcomes := store.NewMemory()

	orderService := service.NewOrderService(tracer, proc, outcomes, clk)
	verifyService := service.NewVerifyService(tracer, testSecret, outcomes, clk)
	h := NewPaymentHandler(orderService, verifyService)

	r := gin.New()
	r.Use(gin.CustomRecovery(Recovery))
	r.GET("/health", h.HealthCheck)
	r.POST("/create-order", h.CreateOrder)
	r.POST("/verify-payment", h.VerifyPayment)
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.NoRoute(NotFound)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		procOrder  json.RawMessage
		procErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success relays processor order",
			body:       `{"amount":500,"currency":"INR"}`,
			procOrder:  json.RawMessage(`{"id":"order_MkyOF","amount":50000,"currency":"INR"}`),
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"order":{"id":"order_MkyOF","amount":50000,"currency":"INR"}}`,
		},
		{
			name:       "missing currency",
			body:       `{"amount":500}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount and currency are required"}`,
		},
		{
			name:       "missing amount",
			body:       `{"currency":"INR"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount and currency are required"}`,
		},
		{
			name:       "empty body",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount and currency are required"}`,
		},
		{
			name:       "malformed json",
			body:       `{"amount":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount and currency are required"}`,
		},
		{
			name:       "non-numeric amount",
			body:       `{"amount":"abc","currency":"INR"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount must be a valid number"}`,
		},
		{
			name:       "empty string amount",
			body:       `{"amount":"","currency":"INR"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Amount must be a valid number"}`,
		},
		{
			name:       "processor failure",
			body:       `{"amount":500,"currency":"INR"}`,
			procErr:    errors.New("processor unreachable"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Unable to create order"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubProcessor{order: tt.procOrder, err: tt.procErr})

			rec := doJSON(t, r, http.MethodPost, "/create-order", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	validSig := signature.Compute("order_abc", "pay_xyz", testSecret)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid signature",
			body:       `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"` + validSig + `"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"Payment verified successfully"}`,
		},
		{
			name:       "tampered signature",
			body:       `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"deadbeef"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Payment verification failed"}`,
		},
		{
			name:       "missing fields",
			body:       `{"razorpay_order_id":"order_abc"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid payment details"}`,
		},
		{
			name:       "malformed json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid payment details"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubProcessor{})

			rec := doJSON(t, r, http.MethodPost, "/verify-payment", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestVerifyPaymentNeverLeaksDigest(t *testing.T) {
	r := newTestRouter(&stubProcessor{})
	expected := signature.Compute("order_abc", "pay_xyz", testSecret)

	rec := doJSON(t, r, http.MethodPost, "/verify-payment",
		`{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"deadbeef"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), expected)
}

func TestUnmatchedRoute(t *testing.T) {
	r := newTestRouter(&stubProcessor{})

	rec := doJSON(t, r, http.MethodGet, "/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"API route not found"}`, rec.Body.String())
}

func TestPanicRecovery(t *testing.T) {
	r := newTestRouter(&stubProcessor{})

	rec := doJSON(t, r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Something went wrong! Please try again later."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(&stubProcessor{})

	rec := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
