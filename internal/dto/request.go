package dto

type CreateTransactionRequest struct {
	UserID    uint  `json:"user_id"`
	EventID   uint  `json:"event_id"`
	Quantity  int   `json:"quantity"`
	CouponID  *uint `json:"coupon_id,omitempty"`
	VoucherID *uint `json:"voucher_id,omitempty"`
	PointsID  *uint `json:"points_id,omitempty"`
}

type DecisionRequest struct {
	OrganizerID uint   `json:"organizer_id"`
	Action      string `json:"action"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetTokenRequest struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	UserID          uint   `json:"user_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileRequest struct {
	UserID    uint    `json:"user_id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
}
