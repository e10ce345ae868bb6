package dto

import (
	"time"

	"github.com/ticketly/ticket-service/internal/models"
)

type TransactionResponse struct {
	ID             uint                     `json:"id"`
	UserID         uint                     `json:"user_id"`
	EventID        uint                     `json:"event_id"`
	Quantity       int                      `json:"quantity"`
	UnitPrice      float64                  `json:"unit_price"`
	TotalPayAmount float64                  `json:"total_pay_amount"`
	PaymentProof   *string                  `json:"payment_proof,omitempty"`
	Status         models.TransactionStatus `json:"status"`
	ExpiresAt      time.Time                `json:"expires_at"`
	CouponID       *uint                    `json:"coupon_id,omitempty"`
	VoucherID      *uint                    `json:"voucher_id,omitempty"`
	PointsID       *uint                    `json:"points_id,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

type UserResponse struct {
	ID             uint            `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		EventID:        t.EventID,
		Quantity:       t.Quantity,
		UnitPrice:      t.UnitPrice,
		TotalPayAmount: t.TotalPayAmount,
		PaymentProof:   t.PaymentProof,
		Status:         t.Status,
		ExpiresAt:      t.ExpiresAt,
		CouponID:       t.CouponID,
		VoucherID:      t.VoucherID,
		PointsID:       t.PointsID,
		CreatedAt:      t.CreatedAt,
	}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
