package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"github.com/ticketly/ticket-service/internal/monitoring"
	"github.com/ticketly/ticket-service/internal/repository"
	"gorm.io/gorm"
)

const (
	// PaymentWindow is how long a priced transaction waits for a payment proof.
	PaymentWindow = 2 * time.Hour
	// ConfirmationWindow is how long a submitted proof may sit unreviewed
	// before the auto-cancel sweep reverses it.
	ConfirmationWindow = 3 * 24 * time.Hour
)

type DecisionAction string

const (
	ActionConfirm DecisionAction = "confirm"
	ActionReject  DecisionAction = "reject"
)

type CreateTransactionParams struct {
	UserID    uint
	EventID   uint
	Quantity  int
	Discounts DiscountRefs
}

type TransactionService interface {
	Create(ctx context.Context, params CreateTransactionParams) (*models.Transaction, error)
	SubmitPayment(ctx context.Context, transactionID, userID uint, filename string, proof io.Reader) (*models.Transaction, error)
	OrganizerDecision(ctx context.Context, transactionID, organizerID uint, action DecisionAction) (*models.Transaction, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	AutoExpire(ctx context.Context) (int64, error)
	AutoCancel(ctx context.Context) (int, error)
}

type transactionService struct {
	txm       repository.TxManager
	txns      repository.TransactionRepository
	events    repository.EventRepository
	users     repository.UserRepository
	discounts repository.DiscountRepository
	resolver  *DiscountResolver
	media     MediaStore
	notifier  Notifier
}

func NewTransactionService(
	txm repository.TxManager,
	txns repository.TransactionRepository,
	events repository.EventRepository,
	users repository.UserRepository,
	discounts repository.DiscountRepository,
	media MediaStore,
	notifier Notifier,
) TransactionService {
	return &transactionService{
		txm:       txm,
		txns:      txns,
		events:    events,
		users:     users,
		discounts: discounts,
		resolver:  NewDiscountResolver(discounts),
		media:     media,
		notifier:  notifier,
	}
}

func (s *transactionService) Create(ctx context.Context, params CreateTransactionParams) (*models.Transaction, error) {
	event, err := s.events.FindByID(ctx, params.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	user, err := s.users.FindByID(ctx, params.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if event.RemainingSeats < params.Quantity {
		return nil, ErrInsufficientSeats
	}

	amounts, err := s.resolver.Resolve(ctx, user.ID, event.ID, params.Discounts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := models.StatusWaitingForPayment
	expiresAt := now.Add(PaymentWindow)
	if event.Price == 0 {
		// Free events skip payment entirely.
		status = models.StatusConfirmed
		expiresAt = now
	}

	txn := &models.Transaction{
		UserID:         user.ID,
		EventID:        event.ID,
		Quantity:       params.Quantity,
		UnitPrice:      event.Price,
		TotalPayAmount: PayableAmount(event.Price, params.Quantity, amounts),
		Status:         status,
		ExpiresAt:      expiresAt,
		CouponID:       params.Discounts.CouponID,
		VoucherID:      params.Discounts.VoucherID,
		PointsID:       params.Discounts.PointsID,
	}

	// Insert, seat decrement and instrument reservations are one atomic unit.
	// Every guard re-checks inside the statement, so a concurrent Create racing
	// for the last seats or the last coupon use rolls the whole unit back.
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.txns.Create(ctx, tx, txn); err != nil {
			return err
		}

		ok, err := s.events.DecrementSeats(ctx, tx, event.ID, params.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientSeats
		}

		if params.Discounts.CouponID != nil {
			ok, err := s.discounts.ReserveCoupon(ctx, tx, *params.Discounts.CouponID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidDiscount
			}
		}
		if params.Discounts.VoucherID != nil {
			ok, err := s.discounts.ReserveVoucher(ctx, tx, *params.Discounts.VoucherID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidDiscount
			}
		}
		if params.Discounts.PointsID != nil {
			ok, err := s.discounts.ReservePoints(ctx, tx, *params.Discounts.PointsID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidDiscount
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.TransactionCreated(string(status))
	return txn, nil
}

func (s *transactionService) SubmitPayment(ctx context.Context, transactionID, userID uint, filename string, proof io.Reader) (*models.Transaction, error) {
	txn, err := s.txns.FindByID(ctx, transactionID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}

	if txn.UserID != userID {
		return nil, ErrNotAuthorized
	}
	if txn.Status != models.StatusWaitingForPayment {
		return nil, ErrInvalidStateTransition
	}

	// Lazy expiry-on-touch: a proof arriving after the deadline flips the
	// transaction to expired instead of being silently accepted. A failed guard
	// means the sweep got there first, which lands in the same status.
	if time.Now().After(txn.ExpiresAt) {
		err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
			_, err := s.txns.TransitionStatus(ctx, tx, txn.ID, models.StatusWaitingForPayment, models.StatusExpired)
			return err
		})
		if err != nil {
			return nil, err
		}
		monitoring.TransactionTransition(string(models.StatusExpired))
		return nil, ErrTransactionExpired
	}

	url, err := s.media.Upload(ctx, filename, proof)
	if err != nil {
		return nil, err
	}

	var attached bool
	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		ok, err := s.txns.AttachPaymentProof(ctx, tx, txn.ID, url)
		if err != nil {
			return err
		}
		attached = ok
		return nil
	})
	if err != nil || !attached {
		// The upload already happened; remove it so no orphaned media is left.
		if rmErr := s.media.Remove(ctx, url); rmErr != nil {
			slog.Error("failed to remove orphaned payment proof",
				"transaction_id", txn.ID, "url", url, "error", rmErr)
		}
		monitoring.MediaCompensation()
		if err != nil {
			return nil, err
		}
		// The row left waiting_for_payment while the proof was uploading.
		return nil, ErrInvalidStateTransition
	}

	txn.PaymentProof = &url
	txn.Status = models.StatusWaitingForAdminConfirmation
	monitoring.TransactionTransition(string(txn.Status))
	return txn, nil
}

func (s *transactionService) OrganizerDecision(ctx context.Context, transactionID, organizerID uint, action DecisionAction) (*models.Transaction, error) {
	txn, err := s.txns.FindByIDWithRelations(ctx, transactionID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}

	if txn.Event == nil || txn.Event.OrganizerID != organizerID {
		return nil, ErrNotAuthorized
	}
	if txn.Status != models.StatusWaitingForAdminConfirmation {
		return nil, ErrInvalidStateTransition
	}

	switch action {
	case ActionConfirm:
		err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
			ok, err := s.txns.TransitionStatus(ctx, tx, txn.ID, models.StatusWaitingForAdminConfirmation, models.StatusConfirmed)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidStateTransition
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		txn.Status = models.StatusConfirmed
		monitoring.TransactionTransition(string(models.StatusConfirmed))

		if txn.User != nil {
			email := ConfirmationEmail{
				To:            txn.User.Email,
				Username:      txn.User.Username,
				EventName:     txn.Event.Name,
				EventDate:     txn.Event.StartDate,
				Quantity:      txn.Quantity,
				TransactionID: txn.ID,
			}
			if err := s.notifier.TransactionConfirmed(ctx, email); err != nil {
				slog.Error("failed to send confirmation email",
					"transaction_id", txn.ID, "error", err)
				monitoring.NotificationFailure("transaction_confirmed")
			}
		}
		return txn, nil

	case ActionReject:
		if err := s.reverse(ctx, txn, models.StatusRejected); err != nil {
			return nil, err
		}
		txn.Status = models.StatusRejected
		monitoring.TransactionTransition(string(models.StatusRejected))

		if txn.User != nil {
			email := RejectionEmail{
				To:            txn.User.Email,
				Username:      txn.User.Username,
				EventName:     txn.Event.Name,
				TransactionID: txn.ID,
			}
			if err := s.notifier.TransactionRejected(ctx, email); err != nil {
				slog.Error("failed to send rejection email",
					"transaction_id", txn.ID, "error", err)
				monitoring.NotificationFailure("transaction_rejected")
			}
		}
		return txn, nil

	default:
		return nil, ErrInvalidStateTransition
	}
}

func (s *transactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	txn, err := s.txns.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// AutoExpire moves every overdue waiting_for_payment transaction to expired.
// Seats and discount reservations are intentionally not released here; the
// organizer reject path and the auto-cancel sweep are the release mechanisms.
func (s *transactionService) AutoExpire(ctx context.Context) (int64, error) {
	count, err := s.txns.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		monitoring.TransactionTransition(string(models.StatusExpired))
		slog.Info("expired overdue transactions", "count", count)
	}
	return count, nil
}

// AutoCancel reverses transactions that sat in waiting_for_admin_confirmation
// past the confirmation window. Each row is its own atomic unit; one failure
// does not stop the sweep.
func (s *transactionService) AutoCancel(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-ConfirmationWindow)
	stale, err := s.txns.FindStaleAwaitingConfirmation(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	canceled := 0
	for i := range stale {
		txn := &stale[i]
		if err := s.reverse(ctx, txn, models.StatusCanceled); err != nil {
			if errors.Is(err, ErrInvalidStateTransition) {
				// An organizer decision landed between the read and the
				// reversal; that decision's outcome stands.
				continue
			}
			slog.Error("failed to cancel stale transaction",
				"transaction_id", txn.ID, "error", err)
			continue
		}
		canceled++
		monitoring.TransactionTransition(string(models.StatusCanceled))
	}

	if canceled > 0 {
		slog.Info("canceled stale transactions", "count", canceled, "stale", len(stale))
	}
	return canceled, nil
}

// reverse restores the seats and discount reservations held by txn and moves it
// to the given terminal status, all in one atomic unit. The guarded status
// transition comes first: two units reading the same row can both attempt a
// reversal, but only the one that wins the guard applies it, so seats and
// usage counters are restored exactly once.
func (s *transactionService) reverse(ctx context.Context, txn *models.Transaction, to models.TransactionStatus) error {
	return s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		ok, err := s.txns.TransitionStatus(ctx, tx, txn.ID, txn.Status, to)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStateTransition
		}
		if err := s.events.IncrementSeats(ctx, tx, txn.EventID, txn.Quantity); err != nil {
			return err
		}
		if txn.CouponID != nil {
			if err := s.discounts.ReleaseCoupon(ctx, tx, *txn.CouponID); err != nil {
				return err
			}
		}
		if txn.VoucherID != nil {
			if err := s.discounts.ReleaseVoucher(ctx, tx, *txn.VoucherID); err != nil {
				return err
			}
		}
		if txn.PointsID != nil {
			if err := s.discounts.ReleasePoints(ctx, tx, *txn.PointsID); err != nil {
				return err
			}
		}
		return nil
	})
}
