package service

import (
	"context"
	"io"
	"time"
)

// MediaStore holds uploaded payment proofs and profile pictures. Remove on a
// URL that no longer exists is not an error.
type MediaStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

type ConfirmationEmail struct {
	To            string
	Username      string
	EventName     string
	EventDate     time.Time
	Quantity      int
	TransactionID uint
}

type RejectionEmail struct {
	To            string
	Username      string
	EventName     string
	TransactionID uint
}

type PasswordResetEmail struct {
	To         string
	ResetToken string
}

// Notifier sends templated emails on state transitions. Every call is
// best-effort from the caller's point of view: a failure is logged and never
// rolls back a committed transition.
type Notifier interface {
	TransactionConfirmed(ctx context.Context, email ConfirmationEmail) error
	TransactionRejected(ctx context.Context, email RejectionEmail) error
	PasswordReset(ctx context.Context, email PasswordResetEmail) error
}
