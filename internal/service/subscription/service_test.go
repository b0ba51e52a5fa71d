package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/internal/service/billing"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
)

type mockSubscriptionRepo struct {
	getPlanFn           func(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error)
	createTransactionFn func(ctx context.Context, txn *model.Transaction) error
}

var _ repository.SubscriptionRepository = (*mockSubscriptionRepo)(nil)

func (m *mockSubscriptionRepo) CreatePlan(ctx context.Context, plan *model.SubscriptionPlan) error {
	panic("unexpected call")
}

func (m *mockSubscriptionRepo) GetPlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	return m.getPlanFn(ctx, id)
}

func (m *mockSubscriptionRepo) ListPlans(ctx context.Context, onlyActive bool) ([]*model.SubscriptionPlan, error) {
	panic("unexpected call")
}

func (m *mockSubscriptionRepo) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	return m.createTransactionFn(ctx, txn)
}

func (m *mockSubscriptionRepo) ListTransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error) {
	panic("unexpected call")
}

type mockCouponRepo struct {
	getByCodeFn      func(ctx context.Context, code string) (*model.DiscountCoupon, error)
	incrementUsageFn func(ctx context.Context, id uuid.UUID) error
}

var _ repository.CouponRepository = (*mockCouponRepo)(nil)

func (m *mockCouponRepo) Create(ctx context.Context, coupon *model.DiscountCoupon) error {
	panic("unexpected call")
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockCouponRepo) List(ctx context.Context) ([]*model.DiscountCoupon, error) {
	panic("unexpected call")
}

func (m *mockCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.incrementUsageFn(ctx, id)
}

func (m *mockCouponRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func TestPurchase(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()

	var recorded *model.Transaction
	repo := &mockSubscriptionRepo{
		getPlanFn: func(_ context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
			return &model.SubscriptionPlan{
				Base:         model.Base{ID: id},
				PlanName:     "Monthly Care",
				Price:        1000,
				DurationDays: 30,
				IsActive:     true,
			}, nil
		},
		createTransactionFn: func(_ context.Context, txn *model.Transaction) error {
			txn.ID = uuid.New()
			recorded = txn
			return nil
		},
	}
	billingSvc := billing.NewService(nil, &mockCouponRepo{}, nil, nil, nil, logger.NewLogger(nil))

	svc := NewService(repo, billingSvc)
	txn, err := svc.Purchase(context.Background(), userID, &model.PurchaseSubscriptionRequest{
		PlanID:      planID.String(),
		Amount:      1000,
		PaymentMode: "UPI",
	})
	require.NoError(t, err)

	require.NotNil(t, recorded)
	assert.Equal(t, userID, txn.UserID)
	assert.Equal(t, float64(1000), txn.Amount)
	assert.Contains(t, txn.TransactionID, "sub_")
	assert.WithinDuration(t, txn.StartedAt.AddDate(0, 0, 30), txn.ExpiresAt, time.Second)
}

func TestPurchaseAppliesCouponDiscount(t *testing.T) {
	planID := uuid.New()
	now := time.Now()

	repo := &mockSubscriptionRepo{
		getPlanFn: func(_ context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
			return &model.SubscriptionPlan{Base: model.Base{ID: id}, DurationDays: 30, IsActive: true}, nil
		},
		createTransactionFn: func(_ context.Context, txn *model.Transaction) error { return nil },
	}
	coupons := &mockCouponRepo{
		getByCodeFn: func(_ context.Context, code string) (*model.DiscountCoupon, error) {
			return &model.DiscountCoupon{
				Base:               model.Base{ID: uuid.New()},
				Code:               code,
				DiscountPercentage: 20,
				ValidFrom:          now.AddDate(0, 0, -1),
				ValidTo:            now.AddDate(0, 0, 1),
				IsActive:           true,
			}, nil
		},
		incrementUsageFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	billingSvc := billing.NewService(nil, coupons, nil, nil, nil, logger.NewLogger(nil))

	svc := NewService(repo, billingSvc)
	txn, err := svc.Purchase(context.Background(), uuid.New(), &model.PurchaseSubscriptionRequest{
		PlanID:      planID.String(),
		Amount:      1000,
		PaymentMode: "Card",
		CouponCode:  "SPRING20",
	})
	require.NoError(t, err)
	assert.InDelta(t, 800, txn.Amount, 0.001)
}

func TestPurchaseRejectsInactivePlan(t *testing.T) {
	repo := &mockSubscriptionRepo{
		getPlanFn: func(_ context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
			return &model.SubscriptionPlan{Base: model.Base{ID: id}, IsActive: false}, nil
		},
	}
	billingSvc := billing.NewService(nil, &mockCouponRepo{}, nil, nil, nil, logger.NewLogger(nil))

	svc := NewService(repo, billingSvc)
	_, err := svc.Purchase(context.Background(), uuid.New(), &model.PurchaseSubscriptionRequest{
		PlanID:      uuid.NewString(),
		Amount:      500,
		PaymentMode: "UPI",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}
