package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/holidaydesk/vacation-system/internal/api/metrics"
	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

// VacationHandler handles HTTP requests for vacation request operations.
type VacationHandler struct {
	service ports.VacationService
}

func NewVacationHandler(service ports.VacationService) *VacationHandler {
	return &VacationHandler{service: service}
}

// Create handles POST /v1/vacations.
//
// @Summary      Submit a vacation request
// @Tags         vacations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVacationRequest  true  "Requested date range (inclusive)"
// @Success      201   {object}  vacationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/vacations [post]
func (h *VacationHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createVacationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Format already validated by the datetime tag.
	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)

	result, err := h.service.Request(c.Request().Context(), ports.RequestVacationInput{
		Actor:     actor,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toVacationResponse(result))
}

// Approve handles POST /v1/vacations/:id/approve.
//
// @Summary      Approve a pending vacation request
// @Tags         vacations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vacation request id"
// @Success      200  {object}  vacationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/vacations/{id}/approve [post]
func (h *VacationHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Approve(c.Request().Context(), ports.DecisionInput{
		Actor:     actor,
		RequestID: c.Param("id"),
	})
	if err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(result.Status).Inc()
	return c.JSON(http.StatusOK, toVacationResponse(result))
}

// Reject handles POST /v1/vacations/:id/reject.
//
// @Summary      Reject a pending vacation request
// @Tags         vacations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Vacation request id"
// @Param        body  body      rejectVacationRequest  true  "Rejection reason"
// @Success      200   {object}  vacationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/vacations/{id}/reject [post]
func (h *VacationHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req rejectVacationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Reject(c.Request().Context(), ports.DecisionInput{
		Actor:     actor,
		RequestID: c.Param("id"),
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(result.Status).Inc()
	return c.JSON(http.StatusOK, toVacationResponse(result))
}

// ListPending handles GET /v1/vacations/pending.
//
// @Summary      List pending vacation requests
// @Tags         vacations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listVacationsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/vacations/pending [get]
func (h *VacationHandler) ListPending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	results, err := h.service.ListPending(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(results))
}

// ListHistory handles GET /v1/vacations/history.
//
// @Summary      List the caller's own vacation requests
// @Tags         vacations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listVacationsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/vacations/history [get]
func (h *VacationHandler) ListHistory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	results, err := h.service.ListHistory(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(results))
}
