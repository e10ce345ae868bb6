package repository

import (
	"context"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameTakenByOther(ctx context.Context, username string, excludeID uint) (bool, error)
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, hashed string, clearResetToken bool) error
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, tx *gorm.DB, id uint, picture string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameTakenByOther(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"reset_token":      token,
			"reset_expires_at": expiresAt,
		}).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, hashed string, clearResetToken bool) error {
	fields := map[string]any{"password": hashed}
	if clearResetToken {
		fields["reset_token"] = nil
		fields["reset_expires_at"] = nil
	}
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) UpdateProfilePicture(ctx context.Context, tx *gorm.DB, id uint, picture string) error {
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("profile_picture", picture).Error
}
