package models

import "time"

type TransactionStatus string

const (
	StatusWaitingForPayment           TransactionStatus = "waiting_for_payment"
	StatusConfirmed                   TransactionStatus = "confirmed"
	StatusWaitingForAdminConfirmation TransactionStatus = "waiting_for_admin_confirmation"
	StatusRejected                    TransactionStatus = "rejected"
	StatusExpired                     TransactionStatus = "expired"
	StatusCanceled                    TransactionStatus = "canceled"
)

type Transaction struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	EventID        uint              `gorm:"not null;index" json:"event_id"`
	Quantity       int               `gorm:"not null" json:"quantity"`
	UnitPrice      float64           `gorm:"not null" json:"unit_price"`
	TotalPayAmount float64           `gorm:"not null" json:"total_pay_amount"`
	PaymentProof   *string           `json:"payment_proof,omitempty"`
	Status         TransactionStatus `gorm:"type:varchar(40);not null;index" json:"status"`
	ExpiresAt      time.Time         `json:"expires_at"`
	CouponID       *uint             `json:"coupon_id,omitempty"`
	VoucherID      *uint             `json:"voucher_id,omitempty"`
	PointsID       *uint             `json:"points_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
