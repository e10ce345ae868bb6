package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketly/ticket-service/internal/models"
)

func organizerUser() *models.User {
	return &models.User{
		ID:        9,
		Username:  "organizer",
		FirstName: "Olive",
		LastName:  "Garden",
		Role:      models.RoleEventOrganizer,
	}
}

func organizerEvents() []models.Event {
	return []models.Event{
		{
			ID: 2, OrganizerID: 9, Name: "Jazz Night", Category: models.CategoryMusic,
			Reviews: []models.Review{
				{ID: 1, EventID: 2, UserID: 1, Rating: 5},
				{ID: 2, EventID: 2, UserID: 3, Rating: 3},
			},
		},
		{
			ID: 3, OrganizerID: 9, Name: "Rock Fest", Category: models.CategoryFestival,
			Reviews: []models.Review{
				{ID: 4, EventID: 3, UserID: 1, Rating: 4},
			},
		},
	}
}

func TestGetOrganizerProfile_Aggregates(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return organizerUser(), nil
		},
	}
	events := &mockEventRepo{
		findByOrganizerFn: func(ctx context.Context, organizerID uint) ([]models.Event, error) {
			return organizerEvents(), nil
		},
	}
	svc := NewOrganizerService(users, events, nil)

	profile, err := svc.GetOrganizerProfile(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "organizer", profile.Organizer.Username)
	assert.Equal(t, 3, profile.TotalReviews)
	assert.InDelta(t, 4.0, profile.AverageRating, 0.001)
	assert.Len(t, profile.Events, 2)
}

func TestGetOrganizerProfile_NotOrganizer(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			user := organizerUser()
			user.Role = models.RoleUser
			return user, nil
		},
	}
	svc := NewOrganizerService(users, &mockEventRepo{}, nil)

	_, err := svc.GetOrganizerProfile(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotOrganizer)
}

func TestGetOrganizerProfile_CacheHitSkipsDatabase(t *testing.T) {
	cached := OrganizerProfile{
		Organizer:     OrganizerSummary{ID: 9, Username: "organizer"},
		AverageRating: 4,
		TotalReviews:  3,
	}
	data, err := json.Marshal(&cached)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	mock.ExpectGet("organizer:profile:9").SetVal(string(data))

	// Repos that explode if touched: the cache must satisfy the read.
	users := &mockUserRepo{}
	events := &mockEventRepo{}
	svc := NewOrganizerService(users, events, client)

	profile, err := svc.GetOrganizerProfile(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, "organizer", profile.Organizer.Username)
	assert.Equal(t, 3, profile.TotalReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrganizerProfile_CacheMissFillsCache(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return organizerUser(), nil
		},
	}
	events := &mockEventRepo{
		findByOrganizerFn: func(ctx context.Context, organizerID uint) ([]models.Event, error) {
			return organizerEvents(), nil
		},
	}

	client, mock := redismock.NewClientMock()
	mock.ExpectGet("organizer:profile:9").RedisNil()
	mock.Regexp().ExpectSet("organizer:profile:9", `.*"username":"organizer".*`, organizerProfileTTL).SetVal("OK")

	svc := NewOrganizerService(users, events, client)

	profile, err := svc.GetOrganizerProfile(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, 3, profile.TotalReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCardSections_AllCategories(t *testing.T) {
	events := &mockEventRepo{
		findUpcomingFn: func(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error) {
			assert.Equal(t, 3, limit)
			if category == models.CategoryMusic {
				return []models.Event{{ID: 2, Name: "Jazz Night", Category: category}}, nil
			}
			return nil, nil
		},
	}
	svc := NewOrganizerService(&mockUserRepo{}, events, nil)

	sections, err := svc.GetCardSections(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, sections, len(models.AllCategories))
	assert.Equal(t, models.CategoryMusic, sections[0].Category)
	assert.Len(t, sections[0].Events, 1)
}

func TestGetCardSections_SingleCategory(t *testing.T) {
	events := &mockEventRepo{
		findUpcomingFn: func(ctx context.Context, category models.EventCategory, after time.Time, limit int) ([]models.Event, error) {
			return []models.Event{{ID: 5, Category: category}}, nil
		},
	}
	svc := NewOrganizerService(&mockUserRepo{}, events, nil)

	category := models.CategorySports
	sections, err := svc.GetCardSections(context.Background(), &category)

	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, models.CategorySports, sections[0].Category)
}

func TestGetUniqueLocations(t *testing.T) {
	events := &mockEventRepo{
		locationsFn: func(ctx context.Context) ([]string, error) {
			return []string{"Bangkok", "Chiang Mai"}, nil
		},
	}
	svc := NewOrganizerService(&mockUserRepo{}, events, nil)

	locations, err := svc.GetUniqueLocations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Bangkok", "Chiang Mai"}, locations)
}
