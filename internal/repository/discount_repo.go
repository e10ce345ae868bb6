package repository

import (
	"context"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/gorm"
)

// DiscountRepository covers all three discount instruments. Usage counters move
// through guarded single-statement updates so reservations can never overshoot
// max_usage or go below zero, no matter how operations interleave.
type DiscountRepository interface {
	FindCoupon(ctx context.Context, id uint) (*models.Coupon, error)
	FindVoucher(ctx context.Context, id uint) (*models.Voucher, error)
	FindPoints(ctx context.Context, id uint) (*models.Points, error)
	ReserveCoupon(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ReleaseCoupon(ctx context.Context, tx *gorm.DB, id uint) error
	ReserveVoucher(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ReleaseVoucher(ctx context.Context, tx *gorm.DB, id uint) error
	ReservePoints(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	ReleasePoints(ctx context.Context, tx *gorm.DB, id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) FindCoupon(ctx context.Context, id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *discountRepository) FindVoucher(ctx context.Context, id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.WithContext(ctx).First(&voucher, id).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *discountRepository) FindPoints(ctx context.Context, id uint) (*models.Points, error) {
	var points models.Points
	if err := r.db.WithContext(ctx).First(&points, id).Error; err != nil {
		return nil, err
	}
	return &points, nil
}

func (r *discountRepository) ReserveCoupon(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND use_count < max_usage", id).
		UpdateColumn("use_count", gorm.Expr("use_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *discountRepository) ReleaseCoupon(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND use_count > 0", id).
		UpdateColumn("use_count", gorm.Expr("use_count - 1")).Error
}

func (r *discountRepository) ReserveVoucher(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("id = ? AND usage_amount < max_usage", id).
		UpdateColumn("usage_amount", gorm.Expr("usage_amount + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *discountRepository) ReleaseVoucher(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("id = ? AND usage_amount > 0", id).
		UpdateColumn("usage_amount", gorm.Expr("usage_amount - 1")).Error
}

func (r *discountRepository) ReservePoints(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Points{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReleasePoints is idempotent: releasing an already-released grant is a no-op.
func (r *discountRepository) ReleasePoints(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Points{}).
		Where("id = ?", id).
		Update("is_used", false).Error
}
