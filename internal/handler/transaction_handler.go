package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ticketly/ticket-service/internal/dto"
	"github.com/ticketly/ticket-service/internal/service"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) RegisterRoutes(e *echo.Echo) {
	txns := e.Group("/api/v1/transactions")
	txns.POST("", h.CreateTransaction)
	txns.GET("/:id", h.GetTransaction)
	txns.POST("/:id/payment-proof", h.SubmitPayment)
	txns.POST("/:id/decision", h.OrganizerDecision)
}

func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 || req.EventID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and event_id are required")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	txn, err := h.svc.Create(c.Request().Context(), service.CreateTransactionParams{
		UserID:   req.UserID,
		EventID:  req.EventID,
		Quantity: req.Quantity,
		Discounts: service.DiscountRefs{
			CouponID:  req.CouponID,
			VoucherID: req.VoucherID,
			PointsID:  req.PointsID,
		},
	})
	if err != nil {
		return mapTransactionError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	txn, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *TransactionHandler) SubmitPayment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	fileHeader, err := c.FormFile("payment_proof")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payment_proof file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read payment_proof file")
	}
	defer file.Close()

	txn, err := h.svc.SubmitPayment(c.Request().Context(), id, uint(userID), fileHeader.Filename, file)
	if err != nil {
		return mapTransactionError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *TransactionHandler) OrganizerDecision(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var action service.DecisionAction
	switch req.Action {
	case string(service.ActionConfirm):
		action = service.ActionConfirm
	case string(service.ActionReject):
		action = service.ActionReject
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "action must be confirm or reject")
	}

	txn, err := h.svc.OrganizerDecision(c.Request().Context(), id, req.OrganizerID, action)
	if err != nil {
		return mapTransactionError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func mapTransactionError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDiscount):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientSeats):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidStateTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTransactionExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
