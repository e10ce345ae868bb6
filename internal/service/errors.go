package service

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidDiscount is wrapped with the failing instrument so callers can
	// tell which of coupon/voucher/points was rejected.
	ErrInvalidDiscount = errors.New("invalid discount instrument")

	ErrInsufficientSeats      = errors.New("not enough seats available")
	ErrNotAuthorized          = errors.New("not authorized to modify this transaction")
	ErrInvalidStateTransition = errors.New("transaction is not in the required status")
	ErrTransactionExpired     = errors.New("transaction has expired")

	ErrNotOrganizer      = errors.New("user is not an event organizer")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
)
