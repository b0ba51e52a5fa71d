package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCouponIsValid(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	coupon := &DiscountCoupon{
		Code:      "SPRING20",
		ValidFrom: from,
		ValidTo:   to,
		IsActive:  true,
	}

	tests := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"first day", from, true},
		{"last day", to, true},
		{"last day late evening", time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), true},
		{"mid range", time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), true},
		{"day before start", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), false},
		{"day after end", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coupon.IsValid(tt.today))
		})
	}
}

func TestDiscountCouponIsValidInactive(t *testing.T) {
	coupon := &DiscountCoupon{
		ValidFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  false,
	}
	assert.False(t, coupon.IsValid(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusRescheduled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, BookingStatus("Unknown").Valid())
	assert.False(t, BookingStatus("").Valid())
}
