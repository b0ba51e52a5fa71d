package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

func (r *subscriptionRepository) CreatePlan(ctx context.Context, plan *model.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (
			id, plan_name, price, duration_days, is_active, location,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	plan.ID = uuid.New()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.PlanName,
		plan.Price,
		plan.DurationDays,
		plan.IsActive,
		plan.Location,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription plan: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	query := `
		SELECT id, plan_name, price, duration_days, is_active, location,
			   created_at, updated_at
		FROM subscription_plans
		WHERE id = $1
	`
	var plan model.SubscriptionPlan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subscription plan %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	return &plan, nil
}

func (r *subscriptionRepository) ListPlans(ctx context.Context, onlyActive bool) ([]*model.SubscriptionPlan, error) {
	query := `
		SELECT id, plan_name, price, duration_days, is_active, location,
			   created_at, updated_at
		FROM subscription_plans
	`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY price`

	var plans []*model.SubscriptionPlan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("failed to list subscription plans: %w", err)
	}
	return plans, nil
}

func (r *subscriptionRepository) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, plan_id, amount, payment_mode, transaction_id,
			started_at, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	txn.ID = uuid.New()
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		txn.ID,
		txn.UserID,
		txn.PlanID,
		txn.Amount,
		txn.PaymentMode,
		txn.TransactionID,
		txn.StartedAt,
		txn.ExpiresAt,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) ListTransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error) {
	query := `
		SELECT id, user_id, plan_id, amount, payment_mode, transaction_id,
			   started_at, expires_at, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`
	var txns []*model.Transaction
	if err := r.db.SelectContext(ctx, &txns, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
