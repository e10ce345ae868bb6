package models

import "time"

// Coupon is a user-scoped discount with a usage cap and validity window.
type Coupon struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	DiscountAmount  float64   `gorm:"not null" json:"discount_amount"`
	CouponStartDate time.Time `json:"coupon_start_date"`
	CouponEndDate   time.Time `json:"coupon_end_date"`
	UseCount        int       `gorm:"not null;default:0" json:"use_count"`
	MaxUsage        int       `gorm:"not null" json:"max_usage"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Voucher is the event-scoped counterpart of a Coupon.
type Voucher struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;index" json:"event_id"`
	DiscountAmount   float64   `gorm:"not null" json:"discount_amount"`
	VoucherStartDate time.Time `json:"voucher_start_date"`
	VoucherEndDate   time.Time `json:"voucher_end_date"`
	UsageAmount      int       `gorm:"not null;default:0" json:"usage_amount"`
	MaxUsage         int       `gorm:"not null" json:"max_usage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Points is a single-use loyalty grant. It is consumed at most once; rejecting
// or canceling the transaction that reserved it releases it again.
type Points struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	PointsAmount float64   `gorm:"not null" json:"points_amount"`
	IsUsed       bool      `gorm:"not null;default:false" json:"is_used"`
	IsExpired    bool      `gorm:"not null;default:false" json:"is_expired"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
