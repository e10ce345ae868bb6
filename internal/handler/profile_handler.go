package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ticketly/ticket-service/internal/dto"
	"github.com/ticketly/ticket-service/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo) {
	auth := e.Group("/api/v1/auth")
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/verify-reset-token", h.VerifyResetToken)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/change-password", h.ChangePassword)

	e.PATCH("/api/v1/profile", h.UpdateProfile)
	e.POST("/api/v1/profile/picture", h.UploadProfilePicture)
}

func (h *ProfileHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.svc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset email sent"})
}

func (h *ProfileHandler) VerifyResetToken(c echo.Context) error {
	var req dto.VerifyResetTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.VerifyResetToken(c.Request().Context(), req.Email, req.ResetToken); err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": true})
}

func (h *ProfileHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "new_password is required")
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Email, req.ResetToken, req.NewPassword); err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset successfully"})
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and new_password are required")
	}

	if err := h.svc.ChangePassword(c.Request().Context(), req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been changed successfully"})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), req.UserID, service.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *ProfileHandler) UploadProfilePicture(c echo.Context) error {
	userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "picture file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read picture file")
	}
	defer file.Close()

	user, err := h.svc.UploadProfilePicture(c.Request().Context(), uint(userID), fileHeader.Filename, file)
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidResetToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrResetTokenExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
