package models

import "time"

type UserRole string

const (
	RoleUser           UserRole = "user"
	RoleEventOrganizer UserRole = "event_organizer"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FirstName      string     `gorm:"not null" json:"first_name"`
	LastName       string     `gorm:"not null" json:"last_name"`
	Username       string     `gorm:"uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"not null" json:"-"`
	Role           UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	ResetToken     *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
