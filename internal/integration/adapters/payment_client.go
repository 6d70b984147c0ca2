package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// paymentClient implements adapter.PaymentGateway against the Mercado Pago
// payments API.
type paymentClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewPaymentClient creates a new payment gateway client.
func NewPaymentClient(baseURL, token string, timeout time.Duration) adapter.PaymentGateway {
	return &paymentClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// paymentResponse is the subset of the provider payload the gate cares about.
type paymentResponse struct {
	ID     json.Number `json:"id"`
	Status string      `json:"status"`
}

// CheckPaymentStatus queries the provider for a payment's status. Any
// transport or decode failure surfaces as an error so the premium gate fails
// closed.
func (c *paymentClient) CheckPaymentStatus(ctx context.Context, paymentID string) (adapter.PaymentStatus, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Unknown payment IDs read as rejected, not as a verification outage.
		return adapter.PaymentStatusRejected, nil
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var payload paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode payment response: %w", err)
	}

	switch payload.Status {
	case "approved":
		return adapter.PaymentStatusApproved, nil
	case "pending", "in_process", "authorized":
		return adapter.PaymentStatusPending, nil
	default:
		return adapter.PaymentStatusRejected, nil
	}
}
