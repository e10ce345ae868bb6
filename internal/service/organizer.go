package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ticketly/ticket-service/internal/models"
	"github.com/ticketly/ticket-service/internal/repository"
)

const (
	organizerProfileTTL    = 5 * time.Minute
	organizerProfileKeyFmt = "organizer:profile:%d"
	cardSectionLimit       = 3
)

type OrganizerSummary struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

type OrganizerProfile struct {
	Organizer     OrganizerSummary `json:"organizer"`
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int              `json:"total_reviews"`
	Reviews       []models.Review  `json:"reviews"`
	Events        []models.Event   `json:"events"`
}

type CardSection struct {
	Category models.EventCategory `json:"category"`
	Events   []models.Event       `json:"events"`
}

type OrganizerService interface {
	GetOrganizerProfile(ctx context.Context, organizerID uint) (*OrganizerProfile, error)
	GetCardSections(ctx context.Context, category *models.EventCategory) ([]CardSection, error)
	GetUniqueLocations(ctx context.Context) ([]string, error)
}

type organizerService struct {
	users  repository.UserRepository
	events repository.EventRepository
	cache  redis.Cmdable
}

// NewOrganizerService builds the aggregation service. cache may be nil; every
// cache failure degrades to the database path.
func NewOrganizerService(users repository.UserRepository, events repository.EventRepository, cache redis.Cmdable) OrganizerService {
	return &organizerService{users: users, events: events, cache: cache}
}

func (s *organizerService) GetOrganizerProfile(ctx context.Context, organizerID uint) (*OrganizerProfile, error) {
	key := fmt.Sprintf(organizerProfileKeyFmt, organizerID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var profile OrganizerProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	user, err := s.users.FindByID(ctx, organizerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role != models.RoleEventOrganizer {
		return nil, ErrNotOrganizer
	}

	events, err := s.events.FindByOrganizerWithReviews(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	ratingSum := 0
	for _, event := range events {
		reviews = append(reviews, event.Reviews...)
		for _, r := range event.Reviews {
			ratingSum += r.Rating
		}
	}

	average := 0.0
	if len(reviews) > 0 {
		average = float64(ratingSum) / float64(len(reviews))
	}

	profile := &OrganizerProfile{
		Organizer: OrganizerSummary{
			ID:             user.ID,
			Username:       user.Username,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			ProfilePicture: user.ProfilePicture,
		},
		AverageRating: average,
		TotalReviews:  len(reviews),
		Reviews:       reviews,
		Events:        events,
	}

	if s.cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.cache.Set(ctx, key, data, organizerProfileTTL).Err(); err != nil {
				slog.Debug("failed to cache organizer profile", "organizer_id", organizerID, "error", err)
			}
		}
	}

	return profile, nil
}

func (s *organizerService) GetCardSections(ctx context.Context, category *models.EventCategory) ([]CardSection, error) {
	categories := models.AllCategories
	if category != nil {
		categories = []models.EventCategory{*category}
	}

	now := time.Now()
	sections := make([]CardSection, 0, len(categories))
	for _, c := range categories {
		events, err := s.events.FindUpcomingByCategory(ctx, c, now, cardSectionLimit)
		if err != nil {
			return nil, err
		}
		sections = append(sections, CardSection{Category: c, Events: events})
	}
	return sections, nil
}

func (s *organizerService) GetUniqueLocations(ctx context.Context) ([]string, error) {
	return s.events.DistinctLocations(ctx)
}
