package models

import "time"

type EventCategory string

const (
	CategoryMusic      EventCategory = "music"
	CategorySports     EventCategory = "sports"
	CategoryTheater    EventCategory = "theater"
	CategoryWorkshop   EventCategory = "workshop"
	CategoryFestival   EventCategory = "festival"
	CategoryExhibition EventCategory = "exhibition"
)

// AllCategories drives the per-category card sections on the landing page.
var AllCategories = []EventCategory{
	CategoryMusic,
	CategorySports,
	CategoryTheater,
	CategoryWorkshop,
	CategoryFestival,
	CategoryExhibition,
}

type Event struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrganizerID    uint          `gorm:"not null;index" json:"organizer_id"`
	Name           string        `gorm:"not null" json:"name"`
	Category       EventCategory `gorm:"type:varchar(30);not null" json:"category"`
	Location       string        `gorm:"not null" json:"location"`
	Price          float64       `gorm:"not null" json:"price"`
	TotalSeats     int           `gorm:"not null" json:"total_seats"`
	RemainingSeats int           `gorm:"not null" json:"remaining_seats"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	EventImage     *string       `json:"event_image,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Organizer *User    `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Reviews   []Review `gorm:"foreignKey:EventID" json:"reviews,omitempty"`
}
