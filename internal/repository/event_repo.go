package repository

import (
	"context"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByOrganizerWithReviews(ctx context.Context, organizerID uint) ([]models.Event, error)
	FindUpcomingByCategory(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error)
	DistinctLocations(ctx context.Context) ([]string, error)
	DecrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) (bool, error)
	IncrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByOrganizerWithReviews(ctx context.Context, organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Preload("Reviews").
		Preload("Reviews.User").
		Order("start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindUpcomingByCategory(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("category = ? AND start_date > ?", category, after).
		Order("start_date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	var locations []string
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Distinct("location").
		Order("location ASC").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// DecrementSeats reserves quantity seats in a single guarded statement. The
// sufficiency check and the decrement are one UPDATE, so two concurrent buyers
// can never drive remaining_seats negative. Returns false when the guard fails.
func (r *eventRepository) DecrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND remaining_seats >= ?", eventID, quantity).
		UpdateColumn("remaining_seats", gorm.Expr("remaining_seats - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *eventRepository) IncrementSeats(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("remaining_seats", gorm.Expr("remaining_seats + ?", quantity)).Error
}
