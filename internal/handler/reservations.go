package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/dto"
    "github.com/iliyamo/animal-shelter/internal/repository"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// ReservationHandler serves /api/reservations.  Volunteers only ever see
// and touch their own reservations; the service enforces that.
type ReservationHandler struct {
    Reservations *service.ReservationService
}

func NewReservationHandler(s *service.ReservationService) *ReservationHandler {
    return &ReservationHandler{Reservations: s}
}

// List handles GET /api/reservations?volunteer_id=&animal_id=.
func (h *ReservationHandler) List(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    var f repository.ReservationFilter
    errs := echo.QueryParamsBinder(c).FailFast(false).
        Uint64("volunteer_id", &f.VolunteerID).
        Uint64("animal_id", &f.AnimalID).
        BindErrors()
    if err := bindErrors(errs); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Reservations.List(ctx, a, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    r, err := h.Reservations.Get(ctx, a, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, r)
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    var in dto.ReservationCreate
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    r, err := h.Reservations.Create(ctx, a, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, r)
}

// Patch handles PATCH /api/reservations/:id.
func (h *ReservationHandler) Patch(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    id, err := parseID(c)
    if err != nil {
        return err
    }
    p, err := readPatch(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    r, err := h.Reservations.Patch(ctx, a, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    if err := h.Reservations.Delete(ctx, a, id); err != nil {
        return err
    }
    return c.NoContent(http.StatusNoContent)
}
