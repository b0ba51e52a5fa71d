package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/internal/service/billing"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

type Service struct {
	repo    repository.SubscriptionRepository
	billing *billing.Service
}

func NewService(repo repository.SubscriptionRepository, billingSvc *billing.Service) *Service {
	return &Service{repo: repo, billing: billingSvc}
}

func (s *Service) CreatePlan(ctx context.Context, req *model.CreateSubscriptionPlanRequest) (*model.SubscriptionPlan, error) {
	plan := &model.SubscriptionPlan{
		PlanName:     req.PlanName,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	if req.Location != "" {
		plan.Location = &req.Location
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create subscription plan: %w", err)
	}
	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	return s.repo.GetPlan(ctx, id)
}

func (s *Service) ListPlans(ctx context.Context, onlyActive bool) ([]*model.SubscriptionPlan, error) {
	return s.repo.ListPlans(ctx, onlyActive)
}

// Purchase records the subscription transaction. A coupon, when given,
// is redeemed first and its percentage taken off the charged amount.
// Expiry derives from the plan's duration at purchase time.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, req *model.PurchaseSubscriptionRequest) (*model.Transaction, error) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid plan id", err)
	}

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperrors.BadRequest("plan is not available", nil)
	}

	amount := req.Amount
	if req.CouponCode != "" {
		coupon, err := s.billing.RedeemCoupon(ctx, req.CouponCode, amount)
		if err != nil {
			return nil, err
		}
		amount = amount * (1 - float64(coupon.DiscountPercentage)/100)
	}

	now := time.Now()
	txn := &model.Transaction{
		UserID:        userID,
		PlanID:        planID,
		Amount:        amount,
		PaymentMode:   req.PaymentMode,
		TransactionID: fmt.Sprintf("sub_%s", uuid.NewString()),
		StartedAt:     now,
		ExpiresAt:     now.AddDate(0, 0, plan.DurationDays),
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record subscription: %w", err)
	}
	return txn, nil
}

func (s *Service) ListTransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error) {
	return s.repo.ListTransactionsForUser(ctx, userID)
}
