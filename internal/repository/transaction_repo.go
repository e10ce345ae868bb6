package repository

import (
	"context"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindByIDWithRelations(ctx context.Context, id uint) (*models.Transaction, error)
	TransitionStatus(ctx context.Context, tx *gorm.DB, id uint, from, to models.TransactionStatus) (bool, error)
	AttachPaymentProof(ctx context.Context, tx *gorm.DB, id uint, proof string) (bool, error)
	ExpireOverdue(ctx context.Context, before time.Time) (int64, error)
	FindStaleAwaitingConfirmation(ctx context.Context, before time.Time) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByIDWithRelations(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("User").
		First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransitionStatus moves id from one status to another in a single guarded
// statement. Zero rows affected means the row was not in the expected status
// anymore: the caller lost the race to a concurrent transition and must not
// apply that transition's side effects.
func (r *transactionRepository) TransitionStatus(ctx context.Context, tx *gorm.DB, id uint, from, to models.TransactionStatus) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AttachPaymentProof is guarded on waiting_for_payment so a proof arriving
// after the expiry sweep flipped the row cannot resurrect it.
func (r *transactionRepository) AttachPaymentProof(ctx context.Context, tx *gorm.DB, id uint, proof string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.StatusWaitingForPayment).
		Updates(map[string]any{
			"payment_proof": proof,
			"status":        models.StatusWaitingForAdminConfirmation,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExpireOverdue bulk-moves overdue waiting_for_payment rows to expired. The
// status guard makes the sweep idempotent and safe against a racing payment
// submission: whichever update commits first wins.
func (r *transactionRepository) ExpireOverdue(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("status = ? AND expires_at < ?", models.StatusWaitingForPayment, before).
		Update("status", models.StatusExpired)
	return res.RowsAffected, res.Error
}

func (r *transactionRepository) FindStaleAwaitingConfirmation(ctx context.Context, before time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", models.StatusWaitingForAdminConfirmation, before).
		Order("id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
