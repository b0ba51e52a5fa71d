package gateway

import "context"

// Order is a payment order created on the external gateway. Amounts are
// in minor currency units (paise for INR).
type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	// CreateOrder registers an auto-capture order with the provider,
	// tagging it with the appointment id, and returns its ID.
	CreateOrder(ctx context.Context, amountMinor int64, currency, appointmentID string) (*Order, error)

	// VerifySignature checks the provider's callback signature for the
	// given order and payment IDs.
	VerifySignature(orderID, paymentID, signature string) bool

	// KeyID returns the public key identifier clients use to open the
	// provider checkout.
	KeyID() string
}
