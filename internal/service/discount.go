package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ticketly/ticket-service/internal/repository"
)

type DiscountRefs struct {
	CouponID  *uint
	VoucherID *uint
	PointsID  *uint
}

type DiscountAmounts struct {
	Coupon  float64
	Voucher float64
	Points  float64
}

func (d DiscountAmounts) Total() float64 {
	return d.Coupon + d.Voucher + d.Points
}

// DiscountResolver validates coupon/voucher/points against a purchase request
// and prices them. Instruments are validated independently; the first invalid
// one fails the whole resolution, nothing is partially applied.
type DiscountResolver struct {
	discounts repository.DiscountRepository
}

func NewDiscountResolver(discounts repository.DiscountRepository) *DiscountResolver {
	return &DiscountResolver{discounts: discounts}
}

func (r *DiscountResolver) Resolve(ctx context.Context, userID, eventID uint, refs DiscountRefs) (DiscountAmounts, error) {
	var amounts DiscountAmounts
	now := time.Now()

	if refs.CouponID != nil {
		coupon, err := r.discounts.FindCoupon(ctx, *refs.CouponID)
		if err != nil {
			return DiscountAmounts{}, fmt.Errorf("%w: coupon %d not found", ErrInvalidDiscount, *refs.CouponID)
		}
		if coupon.UserID != userID ||
			now.Before(coupon.CouponStartDate) ||
			now.After(coupon.CouponEndDate) ||
			coupon.UseCount >= coupon.MaxUsage {
			return DiscountAmounts{}, fmt.Errorf("%w: coupon %d is invalid or expired", ErrInvalidDiscount, coupon.ID)
		}
		amounts.Coupon = coupon.DiscountAmount
	}

	if refs.VoucherID != nil {
		voucher, err := r.discounts.FindVoucher(ctx, *refs.VoucherID)
		if err != nil {
			return DiscountAmounts{}, fmt.Errorf("%w: voucher %d not found", ErrInvalidDiscount, *refs.VoucherID)
		}
		if voucher.EventID != eventID ||
			now.Before(voucher.VoucherStartDate) ||
			now.After(voucher.VoucherEndDate) ||
			voucher.UsageAmount >= voucher.MaxUsage {
			return DiscountAmounts{}, fmt.Errorf("%w: voucher %d is invalid or expired", ErrInvalidDiscount, voucher.ID)
		}
		amounts.Voucher = voucher.DiscountAmount
	}

	if refs.PointsID != nil {
		points, err := r.discounts.FindPoints(ctx, *refs.PointsID)
		if err != nil {
			return DiscountAmounts{}, fmt.Errorf("%w: points %d not found", ErrInvalidDiscount, *refs.PointsID)
		}
		if points.UserID != userID ||
			points.IsUsed ||
			points.IsExpired ||
			now.After(points.ExpiresAt) {
			return DiscountAmounts{}, fmt.Errorf("%w: points %d are invalid or expired", ErrInvalidDiscount, points.ID)
		}
		amounts.Points = points.PointsAmount
	}

	return amounts, nil
}

// PayableAmount clamps at zero: a transaction never has negative cost.
func PayableAmount(unitPrice float64, quantity int, discounts DiscountAmounts) float64 {
	total := unitPrice*float64(quantity) - discounts.Total()
	if total < 0 {
		return 0
	}
	return total
}
