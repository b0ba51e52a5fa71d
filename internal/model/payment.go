package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// Payment tracks the monetary lifecycle of an appointment through the
// external gateway. transaction_id is unique in the store; it holds the
// gateway order id until the verified callback swaps in the payment id.
type Payment struct {
	Base
	AppointmentID uuid.UUID     `json:"appointment_id" db:"appointment_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Mode          string        `json:"mode" db:"mode"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	TransactionID string        `json:"transaction_id" db:"transaction_id"`
}

type CreatePaymentRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

// CheckoutResponse hands the client what it needs to complete payment
// against the gateway.
type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	KeyID       string    `json:"key_id"`
	AmountMinor int64     `json:"amount"`
	Currency    string    `json:"currency"`
}

// GatewayCallback is the form payload posted by the gateway after
// client-side checkout.
type GatewayCallback struct {
	OrderID   string `form:"razorpay_order_id" binding:"required"`
	PaymentID string `form:"razorpay_payment_id" binding:"required"`
	Signature string `form:"razorpay_signature" binding:"required"`
}

// DiscountCoupon; validity depends only on is_active and the date range.
type DiscountCoupon struct {
	Base
	Code               string    `json:"code" db:"code"`
	Description        string    `json:"description" db:"description"`
	DiscountPercentage int       `json:"discount_percentage" db:"discount_percentage"`
	ValidFrom          time.Time `json:"valid_from" db:"valid_from"`
	ValidTo            time.Time `json:"valid_to" db:"valid_to"`
	MinAmount          float64   `json:"min_amount" db:"min_amount"`
	MaxUsage           int       `json:"max_usage" db:"max_usage"`
	UsedCount          int       `json:"used_count" db:"used_count"`
	IsActive           bool      `json:"is_active" db:"is_active"`
}

// IsValid reports whether the coupon is active and the given day falls
// inside [valid_from, valid_to].
func (c *DiscountCoupon) IsValid(today time.Time) bool {
	day := today.Truncate(24 * time.Hour)
	from := c.ValidFrom.Truncate(24 * time.Hour)
	to := c.ValidTo.Truncate(24 * time.Hour)
	return c.IsActive && !day.Before(from) && !day.After(to)
}

type CreateCouponRequest struct {
	Code               string  `json:"code" binding:"required,max=20"`
	Description        string  `json:"description" binding:"required"`
	DiscountPercentage int     `json:"discount_percentage" binding:"required,gte=1,lte=100"`
	ValidFrom          string  `json:"valid_from" binding:"required,datetime=2006-01-02"`
	ValidTo            string  `json:"valid_to" binding:"required,datetime=2006-01-02"`
	MinAmount          float64 `json:"min_amount" binding:"gte=0"`
	MaxUsage           int     `json:"max_usage" binding:"omitempty,gte=1"`
	IsActive           *bool   `json:"is_active"`
}

type ApplyCouponRequest struct {
	Amount float64 `json:"amount" binding:"omitempty,gt=0"`
}

type ApplyCouponResponse struct {
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}
