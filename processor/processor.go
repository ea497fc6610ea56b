package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"checkout-service/models"
)

const defaultTimeout = 10 * time.Second

// Client creates orders with the external payment processor. The processor
// is treated as a black box returning an order object or failing.
type Client interface {
	CreateOrder(ctx context.Context, req models.ProcessorOrderRequest) (json.RawMessage, error)
}

// HTTPClient talks to the processor's order-creation API over HTTP with
// basic auth and a bounded timeout.
type HTTPClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewHTTPClient creates a processor client for the given API base URL and
// key pair.
func NewHTTPClient(baseURL, keyID, keySecret string) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
	}
}

// CreateOrder submits the order to the processor and returns its order
// object verbatim. A single attempt is made; no retries.
func (c *HTTPClient) CreateOrder(ctx context.Context, req models.ProcessorOrderRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment processor: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read processor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("payment processor returned invalid JSON")
	}

	return json.RawMessage(respBody), nil
}
