package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "secret123"})

	valid := signPayload("secret123", "order_abc", "pay_xyz")
	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", valid))

	t.Run("wrong secret", func(t *testing.T) {
		forged := signPayload("other-secret", "order_abc", "pay_xyz")
		assert.False(t, client.VerifySignature("order_abc", "pay_xyz", forged))
	})

	t.Run("tampered payment id", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_abc", "pay_other", valid))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, client.VerifySignature("order_abc", "pay_xyz", ""))
	})
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret123", pass)

		var body struct {
			Amount         int64             `json:"amount"`
			Currency       string            `json:"currency"`
			PaymentCapture int               `json:"payment_capture"`
			Notes          map[string]string `json:"notes"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(15000), body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, 1, body.PaymentCapture)
		assert.Equal(t, "apt-1", body.Notes["appointment_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_123","amount":15000,"currency":"INR","status":"created"}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		KeyID:     "rzp_test_key",
		KeySecret: "secret123",
		BaseURL:   server.URL,
	})

	order, err := client.CreateOrder(context.Background(), 15000, "INR", "apt-1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, int64(15000), order.AmountMinor)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})

	_, err := client.CreateOrder(context.Background(), 100, "INR", "apt-2")
	require.Error(t, err)
}
