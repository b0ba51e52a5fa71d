package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/gateway"
	"github.com/physiocare/physiocare-api/pkg/logger"
)

type mockPaymentRepo struct {
	createFn             func(ctx context.Context, payment *model.Payment) error
	getFn                func(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	getByTransactionFn   func(ctx context.Context, transactionID string) (*model.Payment, error)
	updateFn             func(ctx context.Context, payment *model.Payment) error
	listForAppointmentFn func(ctx context.Context, appointmentID uuid.UUID) ([]*model.Payment, error)
}

var _ repository.PaymentRepository = (*mockPaymentRepo)(nil)

func (m *mockPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return m.createFn(ctx, payment)
}

func (m *mockPaymentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return m.getFn(ctx, id)
}

func (m *mockPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	return m.getByTransactionFn(ctx, transactionID)
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	return m.updateFn(ctx, payment)
}

func (m *mockPaymentRepo) ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Payment, error) {
	return m.listForAppointmentFn(ctx, appointmentID)
}

type mockCouponRepo struct {
	createFn         func(ctx context.Context, coupon *model.DiscountCoupon) error
	getByCodeFn      func(ctx context.Context, code string) (*model.DiscountCoupon, error)
	listFn           func(ctx context.Context) ([]*model.DiscountCoupon, error)
	incrementUsageFn func(ctx context.Context, id uuid.UUID) error
	deactivateFn     func(ctx context.Context, id uuid.UUID) error
}

var _ repository.CouponRepository = (*mockCouponRepo)(nil)

func (m *mockCouponRepo) Create(ctx context.Context, coupon *model.DiscountCoupon) error {
	return m.createFn(ctx, coupon)
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockCouponRepo) List(ctx context.Context) ([]*model.DiscountCoupon, error) {
	return m.listFn(ctx)
}

func (m *mockCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.incrementUsageFn(ctx, id)
}

func (m *mockCouponRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.deactivateFn(ctx, id)
}

type mockAppointmentRepo struct {
	getFn                 func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	updatePaymentStatusFn func(ctx context.Context, id uuid.UUID, status string) error
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return m.getFn(ctx, id)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.updatePaymentStatusFn(ctx, id, status)
}

type mockGateway struct {
	createOrderFn     func(ctx context.Context, amountMinor int64, currency, appointmentID string) (*gateway.Order, error)
	verifySignatureFn func(orderID, paymentID, signature string) bool
}

var _ gateway.PaymentGateway = (*mockGateway)(nil)

func (m *mockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, appointmentID string) (*gateway.Order, error) {
	return m.createOrderFn(ctx, amountMinor, currency, appointmentID)
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.verifySignatureFn(orderID, paymentID, signature)
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

func newTestService(payments repository.PaymentRepository, coupons repository.CouponRepository, appointments repository.AppointmentRepository, gw gateway.PaymentGateway) *Service {
	return NewService(payments, coupons, appointments, gw, nil, logger.NewLogger(nil))
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{150.00, 15000},
		{99.99, 9999},
		{0.50, 50},
		{0.01, 1},
		{0.005, 0},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinorUnits(tt.amount))
	}
}

func TestInitiateCheckout(t *testing.T) {
	therapistID := uuid.New()
	appointmentID := uuid.New()

	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			assert.Equal(t, appointmentID, id)
			return &model.Appointment{
				Base:        model.Base{ID: appointmentID},
				PatientID:   uuid.New(),
				TherapistID: therapistID,
			}, nil
		},
	}
	gw := &mockGateway{
		createOrderFn: func(_ context.Context, amountMinor int64, currency, aptID string) (*gateway.Order, error) {
			assert.Equal(t, int64(15000), amountMinor)
			assert.Equal(t, "INR", currency)
			assert.Equal(t, appointmentID.String(), aptID)
			return &gateway.Order{ID: "order_abc", AmountMinor: amountMinor, Currency: currency}, nil
		},
	}
	var recorded *model.Payment
	payments := &mockPaymentRepo{
		createFn: func(_ context.Context, p *model.Payment) error {
			p.ID = uuid.New()
			recorded = p
			return nil
		},
	}

	svc := newTestService(payments, &mockCouponRepo{}, appointments, gw)
	resp, err := svc.InitiateCheckout(context.Background(), therapistID, &model.CreatePaymentRequest{
		AppointmentID: appointmentID.String(),
		Amount:        150.00,
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, int64(15000), resp.AmountMinor)
	assert.Equal(t, "rzp_test_key", resp.KeyID)

	require.NotNil(t, recorded)
	assert.Equal(t, model.PaymentStatusPending, recorded.PaymentStatus)
	assert.Equal(t, "order_abc", recorded.TransactionID)
	assert.Equal(t, "Razorpay", recorded.Mode)
}

func TestInitiateCheckoutHidesForeignAppointment(t *testing.T) {
	appointmentID := uuid.New()
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{TherapistID: uuid.New()}, nil
		},
	}
	gw := &mockGateway{
		createOrderFn: func(_ context.Context, _ int64, _, _ string) (*gateway.Order, error) {
			t.Fatal("gateway must not be called for a foreign appointment")
			return nil, nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, &mockCouponRepo{}, appointments, gw)
	_, err := svc.InitiateCheckout(context.Background(), uuid.New(), &model.CreatePaymentRequest{
		AppointmentID: appointmentID.String(),
		Amount:        150.00,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestInitiateCheckoutAdminBypassesScoping(t *testing.T) {
	appointmentID := uuid.New()
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:        model.Base{ID: appointmentID},
				TherapistID: uuid.New(),
			}, nil
		},
	}
	gw := &mockGateway{
		createOrderFn: func(_ context.Context, amountMinor int64, currency, _ string) (*gateway.Order, error) {
			return &gateway.Order{ID: "order_adm", AmountMinor: amountMinor, Currency: currency}, nil
		},
	}
	payments := &mockPaymentRepo{
		createFn: func(_ context.Context, p *model.Payment) error { return nil },
	}

	svc := newTestService(payments, &mockCouponRepo{}, appointments, gw)
	resp, err := svc.InitiateCheckout(context.Background(), uuid.Nil, &model.CreatePaymentRequest{
		AppointmentID: appointmentID.String(),
		Amount:        150.00,
	})
	require.NoError(t, err)
	assert.Equal(t, "order_adm", resp.OrderID)
}

func TestInitiateCheckoutRejectsSubMinorAmount(t *testing.T) {
	therapistID := uuid.New()
	appointmentID := uuid.New()
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{TherapistID: therapistID}, nil
		},
	}
	gw := &mockGateway{
		createOrderFn: func(_ context.Context, _ int64, _, _ string) (*gateway.Order, error) {
			t.Fatal("gateway must not be called for an unchargeable amount")
			return nil, nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, &mockCouponRepo{}, appointments, gw)
	_, err := svc.InitiateCheckout(context.Background(), therapistID, &model.CreatePaymentRequest{
		AppointmentID: appointmentID.String(),
		Amount:        0.005,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestHandleCallbackUnknownOrder(t *testing.T) {
	payments := &mockPaymentRepo{
		getByTransactionFn: func(_ context.Context, transactionID string) (*model.Payment, error) {
			return nil, apperrors.NotFound("payment", nil)
		},
	}

	svc := newTestService(payments, &mockCouponRepo{}, &mockAppointmentRepo{}, &mockGateway{})
	_, err := svc.HandleCallback(context.Background(), &model.GatewayCallback{
		OrderID:   "order_unknown",
		PaymentID: "pay_1",
		Signature: "sig",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestHandleCallbackBadSignature(t *testing.T) {
	var updated *model.Payment
	payments := &mockPaymentRepo{
		getByTransactionFn: func(_ context.Context, transactionID string) (*model.Payment, error) {
			return &model.Payment{
				Base:          model.Base{ID: uuid.New()},
				TransactionID: transactionID,
				PaymentStatus: model.PaymentStatusPending,
			}, nil
		},
		updateFn: func(_ context.Context, p *model.Payment) error {
			updated = p
			return nil
		},
	}
	gw := &mockGateway{
		verifySignatureFn: func(_, _, _ string) bool { return false },
	}

	svc := newTestService(payments, &mockCouponRepo{}, &mockAppointmentRepo{}, gw)
	_, err := svc.HandleCallback(context.Background(), &model.GatewayCallback{
		OrderID:   "order_abc",
		PaymentID: "pay_1",
		Signature: "tampered",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)

	require.NotNil(t, updated)
	assert.Equal(t, model.PaymentStatusFailed, updated.PaymentStatus)
}

func TestHandleCallbackSuccess(t *testing.T) {
	appointmentID := uuid.New()
	var updated *model.Payment
	payments := &mockPaymentRepo{
		getByTransactionFn: func(_ context.Context, transactionID string) (*model.Payment, error) {
			return &model.Payment{
				Base:          model.Base{ID: uuid.New()},
				AppointmentID: appointmentID,
				TransactionID: transactionID,
				PaymentStatus: model.PaymentStatusPending,
			}, nil
		},
		updateFn: func(_ context.Context, p *model.Payment) error {
			updated = p
			return nil
		},
	}
	var statusUpdates []string
	appointments := &mockAppointmentRepo{
		updatePaymentStatusFn: func(_ context.Context, id uuid.UUID, status string) error {
			assert.Equal(t, appointmentID, id)
			statusUpdates = append(statusUpdates, status)
			return nil
		},
	}
	gw := &mockGateway{
		verifySignatureFn: func(orderID, paymentID, signature string) bool {
			return orderID == "order_abc" && paymentID == "pay_1"
		},
	}

	svc := newTestService(payments, &mockCouponRepo{}, appointments, gw)
	payment, err := svc.HandleCallback(context.Background(), &model.GatewayCallback{
		OrderID:   "order_abc",
		PaymentID: "pay_1",
		Signature: "good",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, payment.PaymentStatus)
	assert.Equal(t, "pay_1", payment.TransactionID)
	assert.Same(t, updated, payment)
	assert.Equal(t, []string{"Completed"}, statusUpdates)
}

func TestApplyCoupon(t *testing.T) {
	now := time.Now()
	coupon := &model.DiscountCoupon{
		Base:               model.Base{ID: uuid.New()},
		Code:               "SPRING20",
		DiscountPercentage: 20,
		ValidFrom:          now.AddDate(0, 0, -1),
		ValidTo:            now.AddDate(0, 0, 1),
		MinAmount:          100,
		MaxUsage:           5,
		UsedCount:          3,
		IsActive:           true,
	}
	coupons := &mockCouponRepo{
		getByCodeFn: func(_ context.Context, code string) (*model.DiscountCoupon, error) {
			return coupon, nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, coupons, &mockAppointmentRepo{}, &mockGateway{})

	resp, err := svc.ApplyCoupon(context.Background(), "SPRING20", 150)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.DiscountPercentage)

	_, err = svc.ApplyCoupon(context.Background(), "SPRING20", 50)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestApplyCouponExhausted(t *testing.T) {
	now := time.Now()
	coupons := &mockCouponRepo{
		getByCodeFn: func(_ context.Context, code string) (*model.DiscountCoupon, error) {
			return &model.DiscountCoupon{
				Code:      "CAPPED",
				ValidFrom: now.AddDate(0, 0, -1),
				ValidTo:   now.AddDate(0, 0, 1),
				MaxUsage:  2,
				UsedCount: 2,
				IsActive:  true,
			}, nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, coupons, &mockAppointmentRepo{}, &mockGateway{})
	_, err := svc.ApplyCoupon(context.Background(), "CAPPED", 0)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestApplyCouponSeesFreshUsage(t *testing.T) {
	now := time.Now()
	usedCount := 1
	coupons := &mockCouponRepo{
		getByCodeFn: func(_ context.Context, code string) (*model.DiscountCoupon, error) {
			return &model.DiscountCoupon{
				Base:      model.Base{ID: uuid.New()},
				Code:      "CAPPED",
				ValidFrom: now.AddDate(0, 0, -1),
				ValidTo:   now.AddDate(0, 0, 1),
				MaxUsage:  2,
				UsedCount: usedCount,
				IsActive:  true,
			}, nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, coupons, &mockAppointmentRepo{}, &mockGateway{})

	_, err := svc.ApplyCoupon(context.Background(), "CAPPED", 0)
	require.NoError(t, err)

	// Another instance exhausts the coupon. The apply path must read
	// the store rather than the cached copy from the first call.
	usedCount = 2
	_, err = svc.ApplyCoupon(context.Background(), "CAPPED", 0)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestRedeemCouponConsumesUse(t *testing.T) {
	now := time.Now()
	couponID := uuid.New()
	increments := 0
	coupons := &mockCouponRepo{
		getByCodeFn: func(_ context.Context, code string) (*model.DiscountCoupon, error) {
			return &model.DiscountCoupon{
				Base:      model.Base{ID: couponID},
				Code:      "SPRING20",
				ValidFrom: now.AddDate(0, 0, -1),
				ValidTo:   now.AddDate(0, 0, 1),
				IsActive:  true,
			}, nil
		},
		incrementUsageFn: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, couponID, id)
			increments++
			return nil
		},
	}

	svc := newTestService(&mockPaymentRepo{}, coupons, &mockAppointmentRepo{}, &mockGateway{})
	_, err := svc.RedeemCoupon(context.Background(), "SPRING20", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, increments)
}
