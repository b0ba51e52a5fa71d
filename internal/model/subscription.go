package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Base
	PlanName     string  `json:"plan_name" db:"plan_name"`
	Price        float64 `json:"price" db:"price"`
	DurationDays int     `json:"duration_days" db:"duration_days"`
	IsActive     bool    `json:"is_active" db:"is_active"`
	Location     *string `json:"location" db:"location"`
}

type CreateSubscriptionPlanRequest struct {
	PlanName     string  `json:"plan_name" binding:"required,max=100"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
	Location     string  `json:"location"`
	IsActive     *bool   `json:"is_active"`
}

// Transaction records a subscription purchase. transaction_id is unique
// in the store; expires_at derives from the plan's duration.
type Transaction struct {
	Base
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	PlanID        uuid.UUID `json:"plan_id" db:"plan_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMode   string    `json:"payment_mode" db:"payment_mode"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	StartedAt     time.Time `json:"started_at" db:"started_at"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
}

type PurchaseSubscriptionRequest struct {
	PlanID      string  `json:"plan_id" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentMode string  `json:"payment_mode" binding:"required,oneof=UPI Card NetBanking Cash Wallet"`
	CouponCode  string  `json:"coupon_code"`
}
