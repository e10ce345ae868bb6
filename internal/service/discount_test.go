package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ticketly/ticket-service/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func validCoupon() *models.Coupon {
	return &models.Coupon{
		ID:              10,
		UserID:          1,
		DiscountAmount:  50,
		CouponStartDate: time.Now().Add(-24 * time.Hour),
		CouponEndDate:   time.Now().Add(24 * time.Hour),
		UseCount:        0,
		MaxUsage:        5,
	}
}

func validVoucher() *models.Voucher {
	return &models.Voucher{
		ID:               20,
		EventID:          2,
		DiscountAmount:   30,
		VoucherStartDate: time.Now().Add(-24 * time.Hour),
		VoucherEndDate:   time.Now().Add(24 * time.Hour),
		UsageAmount:      0,
		MaxUsage:         100,
	}
}

func validPoints() *models.Points {
	return &models.Points{
		ID:           30,
		UserID:       1,
		PointsAmount: 20,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
}

func TestResolve_NoInstruments(t *testing.T) {
	r := NewDiscountResolver(&mockDiscountRepo{})

	amounts, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{})

	assert.NoError(t, err)
	assert.Zero(t, amounts.Total())
}

func TestResolve_AllInstruments(t *testing.T) {
	repo := &mockDiscountRepo{
		findCouponFn: func(ctx context.Context, id uint) (*models.Coupon, error) {
			return validCoupon(), nil
		},
		findVoucherFn: func(ctx context.Context, id uint) (*models.Voucher, error) {
			return validVoucher(), nil
		},
		findPointsFn: func(ctx context.Context, id uint) (*models.Points, error) {
			return validPoints(), nil
		},
	}
	r := NewDiscountResolver(repo)

	amounts, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{
		CouponID:  uintPtr(10),
		VoucherID: uintPtr(20),
		PointsID:  uintPtr(30),
	})

	assert.NoError(t, err)
	assert.Equal(t, 50.0, amounts.Coupon)
	assert.Equal(t, 30.0, amounts.Voucher)
	assert.Equal(t, 20.0, amounts.Points)
	assert.Equal(t, 100.0, amounts.Total())
}

func TestResolve_CouponNotOwned(t *testing.T) {
	coupon := validCoupon()
	coupon.UserID = 99
	repo := &mockDiscountRepo{
		findCouponFn: func(ctx context.Context, id uint) (*models.Coupon, error) {
			return coupon, nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{CouponID: uintPtr(10)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Contains(t, err.Error(), "coupon")
}

func TestResolve_CouponExhausted(t *testing.T) {
	coupon := validCoupon()
	coupon.UseCount = coupon.MaxUsage
	repo := &mockDiscountRepo{
		findCouponFn: func(ctx context.Context, id uint) (*models.Coupon, error) {
			return coupon, nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{CouponID: uintPtr(10)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestResolve_CouponOutsideWindow(t *testing.T) {
	coupon := validCoupon()
	coupon.CouponEndDate = time.Now().Add(-time.Hour)
	repo := &mockDiscountRepo{
		findCouponFn: func(ctx context.Context, id uint) (*models.Coupon, error) {
			return coupon, nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{CouponID: uintPtr(10)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestResolve_VoucherWrongEvent(t *testing.T) {
	repo := &mockDiscountRepo{
		findVoucherFn: func(ctx context.Context, id uint) (*models.Voucher, error) {
			return validVoucher(), nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 777, DiscountRefs{VoucherID: uintPtr(20)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Contains(t, err.Error(), "voucher")
}

func TestResolve_PointsAlreadyUsed(t *testing.T) {
	points := validPoints()
	points.IsUsed = true
	repo := &mockDiscountRepo{
		findPointsFn: func(ctx context.Context, id uint) (*models.Points, error) {
			return points, nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{PointsID: uintPtr(30)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Contains(t, err.Error(), "points")
}

func TestResolve_PointsPastTimestamp(t *testing.T) {
	points := validPoints()
	points.ExpiresAt = time.Now().Add(-time.Minute)
	repo := &mockDiscountRepo{
		findPointsFn: func(ctx context.Context, id uint) (*models.Points, error) {
			return points, nil
		},
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{PointsID: uintPtr(30)})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestResolve_MissingInstrumentFailsWhole(t *testing.T) {
	repo := &mockDiscountRepo{
		findCouponFn: func(ctx context.Context, id uint) (*models.Coupon, error) {
			return validCoupon(), nil
		},
		// voucher lookup falls through to record-not-found
	}
	r := NewDiscountResolver(repo)

	_, err := r.Resolve(context.Background(), 1, 2, DiscountRefs{
		CouponID:  uintPtr(10),
		VoucherID: uintPtr(20),
	})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestPayableAmount_ClampsAtZero(t *testing.T) {
	assert.Equal(t, 200.0, PayableAmount(100, 2, DiscountAmounts{}))
	assert.Equal(t, 150.0, PayableAmount(100, 2, DiscountAmounts{Coupon: 50}))
	assert.Equal(t, 0.0, PayableAmount(100, 1, DiscountAmounts{Coupon: 50, Voucher: 30, Points: 40}))
	assert.Equal(t, 0.0, PayableAmount(0, 3, DiscountAmounts{}))
}
