package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"github.com/ticketly/ticket-service/internal/models"
	"github.com/ticketly/ticket-service/internal/monitoring"
	"github.com/ticketly/ticket-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 24 * time.Hour

type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
}

type ProfileService interface {
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, email, token string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID uint, params UpdateProfileParams) (*models.User, error)
	UploadProfilePicture(ctx context.Context, userID uint, filename string, content io.Reader) (*models.User, error)
}

type profileService struct {
	txm      repository.TxManager
	users    repository.UserRepository
	media    MediaStore
	notifier Notifier
}

func NewProfileService(txm repository.TxManager, users repository.UserRepository, media MediaStore, notifier Notifier) ProfileService {
	return &profileService{txm: txm, users: users, media: media, notifier: notifier}
}

func generateResetToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *profileService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	token := generateResetToken()
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.Email, token, expiresAt); err != nil {
		return err
	}

	if err := s.notifier.PasswordReset(ctx, PasswordResetEmail{To: user.Email, ResetToken: token}); err != nil {
		slog.Error("failed to send password reset email", "email", user.Email, "error", err)
		monitoring.NotificationFailure("password_reset")
	}
	return nil
}

func (s *profileService) VerifyResetToken(ctx context.Context, email, token string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}
	return checkResetToken(user, token)
}

func checkResetToken(user *models.User, token string) error {
	if user.ResetToken == nil || *user.ResetToken != token {
		return ErrInvalidResetToken
	}
	if user.ResetExpiresAt == nil || user.ResetExpiresAt.Before(time.Now()) {
		return ErrResetTokenExpired
	}
	return nil
}

func (s *profileService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}
	if err := checkResetToken(user, token); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Password change and token clearing land together.
	return s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		return s.users.UpdatePassword(ctx, tx, user.ID, string(hashed), true)
	})
}

func (s *profileService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		return s.users.UpdatePassword(ctx, tx, user.ID, string(hashed), false)
	})
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uint, params UpdateProfileParams) (*models.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	if params.Username != nil {
		taken, err := s.users.UsernameTakenByOther(ctx, *params.Username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	fields := map[string]any{}
	if params.FirstName != nil {
		fields["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		fields["last_name"] = *params.LastName
	}
	if params.Username != nil {
		fields["username"] = *params.Username
	}
	if params.Email != nil {
		fields["email"] = *params.Email
	}
	if len(fields) == 0 {
		return s.users.FindByID(ctx, userID)
	}

	return s.users.UpdateProfile(ctx, userID, fields)
}

func (s *profileService) UploadProfilePicture(ctx context.Context, userID uint, filename string, content io.Reader) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	oldPicture := user.ProfilePicture

	url, err := s.media.Upload(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	err = s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		return s.users.UpdateProfilePicture(ctx, tx, user.ID, url)
	})
	if err != nil {
		if rmErr := s.media.Remove(ctx, url); rmErr != nil {
			slog.Error("failed to remove profile picture after db error",
				"user_id", user.ID, "url", url, "error", rmErr)
		}
		monitoring.MediaCompensation()
		return nil, err
	}

	// The old picture is dead weight now; losing it is not worth failing over.
	if oldPicture != nil && *oldPicture != "" {
		if rmErr := s.media.Remove(ctx, *oldPicture); rmErr != nil {
			slog.Warn("failed to remove old profile picture",
				"user_id", user.ID, "url", *oldPicture, "error", rmErr)
		}
	}

	return s.users.FindByID(ctx, userID)
}
