package service

import (
	"context"
	"io"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/gorm"
)

// Function-field mocks shared by the service tests. Unset fields fall back to
// permissive no-ops so each test only wires what it asserts on.

type mockTxManager struct {
	err   error
	calls int
}

func (m *mockTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type mockEventRepo struct {
	findByIDFn        func(ctx context.Context, id uint) (*models.Event, error)
	findByOrganizerFn func(ctx context.Context, organizerID uint) ([]models.Event, error)
	findUpcomingFn    func(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error)
	locationsFn       func(ctx context.Context) ([]string, error)
	decrementFn       func(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) (bool, error)
	incrementFn       func(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error

	decrementCalls []int
	incrementCalls []int
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) FindByOrganizerWithReviews(ctx context.Context, organizerID uint) ([]models.Event, error) {
	if m.findByOrganizerFn != nil {
		return m.findByOrganizerFn(ctx, organizerID)
	}
	return nil, nil
}

func (m *mockEventRepo) FindUpcomingByCategory(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error) {
	if m.findUpcomingFn != nil {
		return m.findUpcomingFn(ctx, category, after, limit)
	}
	return nil, nil
}

func (m *mockEventRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	if m.locationsFn != nil {
		return m.locationsFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) DecrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) (bool, error) {
	m.decrementCalls = append(m.decrementCalls, quantity)
	if m.decrementFn != nil {
		return m.decrementFn(ctx, tx, eventID, quantity)
	}
	return true, nil
}

func (m *mockEventRepo) IncrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error {
	m.incrementCalls = append(m.incrementCalls, quantity)
	if m.incrementFn != nil {
		return m.incrementFn(ctx, tx, eventID, quantity)
	}
	return nil
}

type mockTransactionRepo struct {
	createFn     func(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	findByIDFn   func(ctx context.Context, id uint) (*models.Transaction, error)
	findWithFn   func(ctx context.Context, id uint) (*models.Transaction, error)
	transitionFn func(ctx context.Context, tx *gorm.DB, id uint, from, to models.TransactionStatus) (bool, error)
	attachFn     func(ctx context.Context, tx *gorm.DB, id uint, proof string) (bool, error)
	expireFn     func(ctx context.Context, before time.Time) (int64, error)
	findStaleFn  func(ctx context.Context, before time.Time) ([]models.Transaction, error)

	created        []*models.Transaction
	statusUpdates  map[uint]models.TransactionStatus
	attachedProofs map[uint]string
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, txn)
	}
	txn.ID = uint(len(m.created) + 1)
	m.created = append(m.created, txn)
	return nil
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransactionRepo) FindByIDWithRelations(ctx context.Context, id uint) (*models.Transaction, error) {
	if m.findWithFn != nil {
		return m.findWithFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// TransitionStatus mimics the guarded UPDATE: once a transition for an id has
// committed, a later attempt with a stale from-status loses the guard.
func (m *mockTransactionRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, id uint, from, to models.TransactionStatus) (bool, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, tx, id, from, to)
	}
	if m.statusUpdates == nil {
		m.statusUpdates = map[uint]models.TransactionStatus{}
	}
	if current, ok := m.statusUpdates[id]; ok && current != from {
		return false, nil
	}
	m.statusUpdates[id] = to
	return true, nil
}

func (m *mockTransactionRepo) AttachPaymentProof(ctx context.Context, tx *gorm.DB, id uint, proof string) (bool, error) {
	if m.attachFn != nil {
		return m.attachFn(ctx, tx, id, proof)
	}
	if m.attachedProofs == nil {
		m.attachedProofs = map[uint]string{}
	}
	m.attachedProofs[id] = proof
	return true, nil
}

func (m *mockTransactionRepo) ExpireOverdue(ctx context.Context, before time.Time) (int64, error) {
	if m.expireFn != nil {
		return m.expireFn(ctx, before)
	}
	return 0, nil
}

func (m *mockTransactionRepo) FindStaleAwaitingConfirmation(ctx context.Context, before time.Time) ([]models.Transaction, error) {
	if m.findStaleFn != nil {
		return m.findStaleFn(ctx, before)
	}
	return nil, nil
}

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	takenFn       func(ctx context.Context, username string, excludeID uint) (bool, error)

	resetTokens     map[string]string
	passwordUpdates map[uint]string
	clearedTokens   map[uint]bool
	pictureUpdates  map[uint]string
	profileUpdates  map[uint]map[string]any
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UsernameTakenByOther(ctx context.Context, username string, excludeID uint) (bool, error) {
	if m.takenFn != nil {
		return m.takenFn(ctx, username, excludeID)
	}
	return false, nil
}

func (m *mockUserRepo) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	if m.resetTokens == nil {
		m.resetTokens = map[string]string{}
	}
	m.resetTokens[email] = token
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, hashed string, clearResetToken bool) error {
	if m.passwordUpdates == nil {
		m.passwordUpdates = map[uint]string{}
		m.clearedTokens = map[uint]bool{}
	}
	m.passwordUpdates[id] = hashed
	m.clearedTokens[id] = clearResetToken
	return nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	if m.profileUpdates == nil {
		m.profileUpdates = map[uint]map[string]any{}
	}
	m.profileUpdates[id] = fields
	return m.FindByID(ctx, id)
}

func (m *mockUserRepo) UpdateProfilePicture(ctx context.Context, tx *gorm.DB, id uint, picture string) error {
	if m.pictureUpdates == nil {
		m.pictureUpdates = map[uint]string{}
	}
	m.pictureUpdates[id] = picture
	return nil
}

type mockDiscountRepo struct {
	findCouponFn  func(ctx context.Context, id uint) (*models.Coupon, error)
	findVoucherFn func(ctx context.Context, id uint) (*models.Voucher, error)
	findPointsFn  func(ctx context.Context, id uint) (*models.Points, error)

	reserveCouponFn func(ctx context.Context, tx *gorm.DB, id uint) (bool, error)

	reservedCoupons  []uint
	releasedCoupons  []uint
	reservedVouchers []uint
	releasedVouchers []uint
	reservedPoints   []uint
	releasedPoints   []uint
}

func (m *mockDiscountRepo) FindCoupon(ctx context.Context, id uint) (*models.Coupon, error) {
	if m.findCouponFn != nil {
		return m.findCouponFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscountRepo) FindVoucher(ctx context.Context, id uint) (*models.Voucher, error) {
	if m.findVoucherFn != nil {
		return m.findVoucherFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscountRepo) FindPoints(ctx context.Context, id uint) (*models.Points, error) {
	if m.findPointsFn != nil {
		return m.findPointsFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscountRepo) ReserveCoupon(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	m.reservedCoupons = append(m.reservedCoupons, id)
	if m.reserveCouponFn != nil {
		return m.reserveCouponFn(ctx, tx, id)
	}
	return true, nil
}

func (m *mockDiscountRepo) ReleaseCoupon(ctx context.Context, tx *gorm.DB, id uint) error {
	m.releasedCoupons = append(m.releasedCoupons, id)
	return nil
}

func (m *mockDiscountRepo) ReserveVoucher(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	m.reservedVouchers = append(m.reservedVouchers, id)
	return true, nil
}

func (m *mockDiscountRepo) ReleaseVoucher(ctx context.Context, tx *gorm.DB, id uint) error {
	m.releasedVouchers = append(m.releasedVouchers, id)
	return nil
}

func (m *mockDiscountRepo) ReservePoints(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	m.reservedPoints = append(m.reservedPoints, id)
	return true, nil
}

func (m *mockDiscountRepo) ReleasePoints(ctx context.Context, tx *gorm.DB, id uint) error {
	m.releasedPoints = append(m.releasedPoints, id)
	return nil
}

type mockMediaStore struct {
	uploadFn func(ctx context.Context, filename string, content io.Reader) (string, error)
	removeFn func(ctx context.Context, url string) error

	uploads []string
	removed []string
}

func (m *mockMediaStore) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	m.uploads = append(m.uploads, filename)
	if m.uploadFn != nil {
		return m.uploadFn(ctx, filename, content)
	}
	return "https://media.example/" + filename, nil
}

func (m *mockMediaStore) Remove(ctx context.Context, url string) error {
	m.removed = append(m.removed, url)
	if m.removeFn != nil {
		return m.removeFn(ctx, url)
	}
	return nil
}

type mockNotifier struct {
	err error

	confirmed []ConfirmationEmail
	rejected  []RejectionEmail
	resets    []PasswordResetEmail
}

func (m *mockNotifier) TransactionConfirmed(ctx context.Context, email ConfirmationEmail) error {
	m.confirmed = append(m.confirmed, email)
	return m.err
}

func (m *mockNotifier) TransactionRejected(ctx context.Context, email RejectionEmail) error {
	m.rejected = append(m.rejected, email)
	return m.err
}

func (m *mockNotifier) PasswordReset(ctx context.Context, email PasswordResetEmail) error {
	m.resets = append(m.resets, email)
	return m.err
}
