package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketly/ticket-service/internal/models"
	"github.com/ticketly/ticket-service/internal/service"
)

type OrganizerHandler struct {
	svc service.OrganizerService
}

func NewOrganizerHandler(svc service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{svc: svc}
}

func (h *OrganizerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/organizers/:id/profile", h.GetOrganizerProfile)
	e.GET("/api/v1/sections", h.GetCardSections)
	e.GET("/api/v1/locations", h.GetUniqueLocations)
}

func (h *OrganizerHandler) GetOrganizerProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.svc.GetOrganizerProfile(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOrganizer):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *OrganizerHandler) GetCardSections(c echo.Context) error {
	var category *models.EventCategory
	if s := c.QueryParam("category"); s != "" {
		ec := models.EventCategory(s)
		category = &ec
	}

	sections, err := h.svc.GetCardSections(c.Request().Context(), category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sections)
}

func (h *OrganizerHandler) GetUniqueLocations(c echo.Context) error {
	locations, err := h.svc.GetUniqueLocations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, locations)
}
