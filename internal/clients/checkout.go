package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CheckoutClient talks to the payment processor's hosted checkout endpoint.
// The processor responds with a URL the browser is redirected to; credits are
// applied only after the success redirect comes back.
type CheckoutClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewCheckoutClient(endpoint string) *CheckoutClient {
	return &CheckoutClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type LineItem struct {
	Name     string `json:"name"`
	Amount   int    `json:"amount"` // minor currency units
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	LineItems  []LineItem `json:"line_items"`
	UserID     string     `json:"user_id"`
	Credits    int        `json:"credits"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

func (c *CheckoutClient) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout endpoint unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout endpoint returned status %d", resp.StatusCode)
	}

	var out CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %v", err)
	}
	if out.CheckoutURL == "" {
		return nil, fmt.Errorf("checkout response missing checkout_url")
	}

	return &out, nil
}
