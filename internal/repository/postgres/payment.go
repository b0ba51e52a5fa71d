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

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (
			id, appointment_id, amount, mode, payment_status, transaction_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.AppointmentID,
		payment.Amount,
		payment.Mode,
		payment.PaymentStatus,
		payment.TransactionID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	query := `
		SELECT id, appointment_id, amount, mode, payment_status, transaction_id,
			   created_at, updated_at
		FROM payments
		WHERE id = $1
	`
	var payment model.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	query := `
		SELECT id, appointment_id, amount, mode, payment_status, transaction_id,
			   created_at, updated_at
		FROM payments
		WHERE transaction_id = $1
	`
	var payment model.Payment
	err := r.db.GetContext(ctx, &payment, query, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment for transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment by transaction: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	query := `
		UPDATE payments
		SET amount = $1, mode = $2, payment_status = $3, transaction_id = $4,
			updated_at = $5
		WHERE id = $6
	`
	payment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		payment.Amount,
		payment.Mode,
		payment.PaymentStatus,
		payment.TransactionID,
		payment.UpdatedAt,
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment %s: %w", payment.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *paymentRepository) ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Payment, error) {
	query := `
		SELECT id, appointment_id, amount, mode, payment_status, transaction_id,
			   created_at, updated_at
		FROM payments
		WHERE appointment_id = $1
		ORDER BY created_at DESC
	`
	var payments []*model.Payment
	if err := r.db.SelectContext(ctx, &payments, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *couponRepository) Create(ctx context.Context, coupon *model.DiscountCoupon) error {
	query := `
		INSERT INTO discount_coupons (
			id, code, description, discount_percentage, valid_from, valid_to,
			min_amount, max_usage, used_count, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	coupon.ID = uuid.New()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.Description,
		coupon.DiscountPercentage,
		coupon.ValidFrom,
		coupon.ValidTo,
		coupon.MinAmount,
		coupon.MaxUsage,
		coupon.UsedCount,
		coupon.IsActive,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	query := `
		SELECT id, code, description, discount_percentage, valid_from, valid_to,
			   min_amount, max_usage, used_count, is_active, created_at, updated_at
		FROM discount_coupons
		WHERE code = $1
	`
	var coupon model.DiscountCoupon
	err := r.db.GetContext(ctx, &coupon, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon %s: %w", code, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context) ([]*model.DiscountCoupon, error) {
	query := `
		SELECT id, code, description, discount_percentage, valid_from, valid_to,
			   min_amount, max_usage, used_count, is_active, created_at, updated_at
		FROM discount_coupons
		ORDER BY valid_to DESC
	`
	var coupons []*model.DiscountCoupon
	if err := r.db.SelectContext(ctx, &coupons, query); err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (r *couponRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	// Guarded increment; a coupon at its cap stays untouched.
	query := `
		UPDATE discount_coupons
		SET used_count = used_count + 1, updated_at = $1
		WHERE id = $2 AND (max_usage = 0 OR used_count < max_usage)
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("coupon %s usage exhausted: %w", id, apperrors.ErrConflict)
	}
	return nil
}

func (r *couponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE discount_coupons
		SET is_active = false, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("coupon %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
