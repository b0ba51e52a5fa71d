package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/gateway"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/metrics"
)

const (
	currency = "INR"

	couponCacheTTL     = 5 * time.Minute
	couponCacheCleanup = 10 * time.Minute
)

type Service struct {
	payments     repository.PaymentRepository
	coupons      repository.CouponRepository
	appointments repository.AppointmentRepository
	gateway      gateway.PaymentGateway
	couponCache  *gocache.Cache
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

func NewService(
	payments repository.PaymentRepository,
	coupons repository.CouponRepository,
	appointments repository.AppointmentRepository,
	gw gateway.PaymentGateway,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		payments:     payments,
		coupons:      coupons,
		appointments: appointments,
		gateway:      gw,
		couponCache:  gocache.New(couponCacheTTL, couponCacheCleanup),
		metrics:      m,
		logger:       logger,
	}
}

// MinorUnits converts a major-unit amount to minor units (paise).
// Fractions below one paisa are dropped, not rounded up.
func MinorUnits(amount float64) int64 {
	return int64(amount * 100)
}

// InitiateCheckout registers a gateway order and records the pending
// payment carrying the order id as its transaction id. The requester
// must be the appointment's therapist; uuid.Nil skips the scoping for
// admin callers. A mismatch reads as not-found so the appointment's
// existence is not leaked.
func (s *Service) InitiateCheckout(ctx context.Context, therapistID uuid.UUID, req *model.CreatePaymentRequest) (*model.CheckoutResponse, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid appointment id", err)
	}

	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if therapistID != uuid.Nil && appointment.TherapistID != therapistID {
		return nil, apperrors.NotFound("appointment", nil)
	}

	amountMinor := MinorUnits(req.Amount)
	if amountMinor < 1 {
		return nil, apperrors.BadRequest("amount below minimum chargeable value", nil)
	}

	start := time.Now()
	order, err := s.gateway.CreateOrder(ctx, amountMinor, currency, appointmentID.String())
	if s.metrics != nil {
		s.metrics.GatewayLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentsInitiated.WithLabelValues("error").Inc()
		}
		return nil, apperrors.Gateway("failed to create payment order", err)
	}

	payment := &model.Payment{
		AppointmentID: appointmentID,
		Amount:        req.Amount,
		Mode:          "Razorpay",
		PaymentStatus: model.PaymentStatusPending,
		TransactionID: order.ID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PaymentsInitiated.WithLabelValues("ok").Inc()
	}

	return &model.CheckoutResponse{
		PaymentID:   payment.ID,
		OrderID:     order.ID,
		KeyID:       s.gateway.KeyID(),
		AmountMinor: amountMinor,
		Currency:    currency,
	}, nil
}

// HandleCallback settles the payment the gateway reports on. An order
// id we never issued is refused outright. A bad signature marks the
// payment Failed and reports verification failure.
func (s *Service) HandleCallback(ctx context.Context, cb *model.GatewayCallback) (*model.Payment, error) {
	payment, err := s.payments.GetByTransactionID(ctx, cb.OrderID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentsVerified.WithLabelValues("unknown_order").Inc()
		}
		return nil, err
	}

	if !s.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		payment.PaymentStatus = model.PaymentStatusFailed
		if err := s.payments.Update(ctx, payment); err != nil {
			s.logger.Error(err, "failed to mark payment failed", "payment_id", payment.ID)
		}
		if s.metrics != nil {
			s.metrics.PaymentsVerified.WithLabelValues("bad_signature").Inc()
		}
		return nil, apperrors.BadRequest("payment signature verification failed", nil)
	}

	payment.PaymentStatus = model.PaymentStatusCompleted
	payment.TransactionID = cb.PaymentID
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	if err := s.appointments.UpdatePaymentStatus(ctx, payment.AppointmentID, string(model.PaymentStatusCompleted)); err != nil {
		s.logger.Error(err, "failed to update appointment payment status", "appointment_id", payment.AppointmentID)
	}

	if s.metrics != nil {
		s.metrics.PaymentsVerified.WithLabelValues("ok").Inc()
	}
	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return s.payments.Get(ctx, id)
}

func (s *Service) ListPaymentsForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Payment, error) {
	return s.payments.ListForAppointment(ctx, appointmentID)
}

func (s *Service) CreateCoupon(ctx context.Context, req *model.CreateCouponRequest) (*model.DiscountCoupon, error) {
	from, err := time.Parse(model.DateOnly, req.ValidFrom)
	if err != nil {
		return nil, apperrors.BadRequest("invalid valid_from date", err)
	}
	to, err := time.Parse(model.DateOnly, req.ValidTo)
	if err != nil {
		return nil, apperrors.BadRequest("invalid valid_to date", err)
	}
	if to.Before(from) {
		return nil, apperrors.BadRequest("coupon must expire on or after its start", nil)
	}

	coupon := &model.DiscountCoupon{
		Code:               req.Code,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		ValidFrom:          from,
		ValidTo:            to,
		MinAmount:          req.MinAmount,
		MaxUsage:           req.MaxUsage,
		IsActive:           true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.couponCache.Set(coupon.Code, coupon, couponCacheTTL)
	return coupon, nil
}

// ApplyCoupon validates the code without consuming a use. The usage
// count moves under other instances, so the exhaustion check reads the
// store directly instead of trusting a cached copy.
func (s *Service) ApplyCoupon(ctx context.Context, code string, amount float64) (*model.ApplyCouponResponse, error) {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.couponCache.Set(code, coupon, couponCacheTTL)

	if !coupon.IsValid(time.Now()) {
		return nil, apperrors.BadRequest("coupon is not valid", nil)
	}
	if amount > 0 && amount < coupon.MinAmount {
		return nil, apperrors.BadRequest("amount below coupon minimum", nil)
	}
	if coupon.MaxUsage > 0 && coupon.UsedCount >= coupon.MaxUsage {
		return nil, apperrors.Conflict("coupon usage exhausted", nil)
	}

	return &model.ApplyCouponResponse{
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
	}, nil
}

// RedeemCoupon validates and consumes one use of the code.
func (s *Service) RedeemCoupon(ctx context.Context, code string, amount float64) (*model.DiscountCoupon, error) {
	coupon, err := s.lookupCoupon(ctx, code)
	if err != nil {
		return nil, err
	}

	if !coupon.IsValid(time.Now()) {
		return nil, apperrors.BadRequest("coupon is not valid", nil)
	}
	if amount > 0 && amount < coupon.MinAmount {
		return nil, apperrors.BadRequest("amount below coupon minimum", nil)
	}

	if err := s.coupons.IncrementUsage(ctx, coupon.ID); err != nil {
		return nil, err
	}

	// The cached copy is stale after a redemption.
	s.couponCache.Delete(coupon.Code)
	return coupon, nil
}

func (s *Service) ListCoupons(ctx context.Context) ([]*model.DiscountCoupon, error) {
	return s.coupons.List(ctx)
}

func (s *Service) lookupCoupon(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	if cached, ok := s.couponCache.Get(code); ok {
		if coupon, ok := cached.(*model.DiscountCoupon); ok {
			return coupon, nil
		}
	}

	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.couponCache.Set(code, coupon, couponCacheTTL)
	return coupon, nil
}
