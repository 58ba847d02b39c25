package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/dto"
    "github.com/iliyamo/animal-shelter/internal/repository"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// recordFilter reads animal_id and veterinarian_id.
func recordFilter(c echo.Context) (repository.RecordFilter, error) {
    var f repository.RecordFilter
    errs := echo.QueryParamsBinder(c).FailFast(false).
        Uint64("animal_id", &f.AnimalID).
        Uint64("veterinarian_id", &f.VeterinarianID).
        BindErrors()
    return f, bindErrors(errs)
}

// ExaminationHandler serves /api/examinations.
type ExaminationHandler struct {
    Examinations *service.ExaminationService
}

func NewExaminationHandler(s *service.ExaminationService) *ExaminationHandler {
    return &ExaminationHandler{Examinations: s}
}

func (h *ExaminationHandler) List(c echo.Context) error {
    f, err := recordFilter(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Examinations.List(ctx, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

func (h *ExaminationHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    e, err := h.Examinations.Get(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, e)
}

// Create records an examination.  Missing caretaker or veterinarian ids
// default to the caller when the caller holds that role.
func (h *ExaminationHandler) Create(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    var in dto.ExaminationCreate
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    e, err := h.Examinations.Create(ctx, a, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, e)
}

func (h *ExaminationHandler) Patch(c echo.Context) error {
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

    e, err := h.Examinations.Patch(ctx, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, e)
}

func (h *ExaminationHandler) Delete(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    if err := h.Examinations.Delete(ctx, id); err != nil {
        return err
    }
    return c.NoContent(http.StatusNoContent)
}

// MedicationHandler serves /api/medications.
type MedicationHandler struct {
    Medications *service.MedicationService
}

func NewMedicationHandler(s *service.MedicationService) *MedicationHandler {
    return &MedicationHandler{Medications: s}
}

func (h *MedicationHandler) List(c echo.Context) error {
    f, err := recordFilter(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Medications.List(ctx, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

func (h *MedicationHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    m, err := h.Medications.Get(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, m)
}

// Create schedules a medication; the veterinarian defaults to the caller.
func (h *MedicationHandler) Create(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    var in dto.MedicationCreate
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    m, err := h.Medications.Create(ctx, a, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, m)
}

func (h *MedicationHandler) Patch(c echo.Context) error {
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

    m, err := h.Medications.Patch(ctx, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, m)
}

func (h *MedicationHandler) Delete(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    if err := h.Medications.Delete(ctx, id); err != nil {
        return err
    }
    return c.NoContent(http.StatusNoContent)
}
