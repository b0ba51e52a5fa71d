package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/physiocare/physiocare-api/pkg/circuitbreaker"
	"github.com/physiocare/physiocare-api/pkg/gateway"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Client talks to the Razorpay Orders API. Calls go through a circuit
// breaker so a degraded gateway fails fast instead of tying up request
// handlers.
type Client struct {
	config  Config
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{Name: "razorpay"}),
	}
}

type orderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	PaymentCapture int               `json:"payment_capture"`
	Notes          map[string]string `json:"notes"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, appointmentID string) (*gateway.Order, error) {
	var order *gateway.Order
	err := c.breaker.Execute(func() error {
		// payment_capture 1 asks Razorpay to capture on authorization;
		// the notes carry the appointment id for reconciliation.
		body, err := json.Marshal(orderRequest{
			Amount:         amountMinor,
			Currency:       currency,
			PaymentCapture: 1,
			Notes:          map[string]string{"appointment_id": appointmentID},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal order request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/orders", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build order request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("failed to call gateway: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}

		var parsed orderResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("failed to decode order response: %w", err)
		}

		order = &gateway.Order{
			ID:          parsed.ID,
			AmountMinor: parsed.Amount,
			Currency:    parsed.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 of "<order_id>|<payment_id>"
// against the signature Razorpay sends in the callback.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.config.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) KeyID() string {
	return c.config.KeyID
}
