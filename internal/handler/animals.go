package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/dto"
    "github.com/iliyamo/animal-shelter/internal/repository"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// AnimalHandler serves /api/animals and the per-animal sub-resources.
type AnimalHandler struct {
    Animals *service.AnimalService
}

func NewAnimalHandler(s *service.AnimalService) *AnimalHandler {
    return &AnimalHandler{Animals: s}
}

// animalFilter reads the listing query: min_age, max_age, breed, sex,
// species, max_weight, search, page, page_size.
func animalFilter(c echo.Context) (repository.AnimalFilter, error) {
    var (
        f              repository.AnimalFilter
        minAge, maxAge int
        maxWeight      float64
    )
    errs := echo.QueryParamsBinder(c).FailFast(false).
        Int("min_age", &minAge).
        Int("max_age", &maxAge).
        Float64("max_weight", &maxWeight).
        String("breed", &f.Breed).
        String("sex", &f.Sex).
        String("species", &f.Species).
        String("search", &f.Search).
        Int("page", &f.Page.Page).
        Int("page_size", &f.PageSize).
        BindErrors()
    if err := bindErrors(errs); err != nil {
        return f, err
    }
    if has(c, "min_age") {
        f.MinAge = &minAge
    }
    if has(c, "max_age") {
        f.MaxAge = &maxAge
    }
    if has(c, "max_weight") {
        f.MaxWeight = &maxWeight
    }
    f.Sex = strings.ToUpper(strings.TrimSpace(f.Sex))
    f.Search = strings.TrimSpace(f.Search)
    return f, nil
}

// List handles GET /api/animals.
func (h *AnimalHandler) List(c echo.Context) error {
    f, err := animalFilter(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    page, err := h.Animals.List(ctx, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/animals/:id.
func (h *AnimalHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    a, err := h.Animals.Get(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, a)
}

// Create handles POST /api/animals.
func (h *AnimalHandler) Create(c echo.Context) error {
    var in dto.AnimalCreate
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    a, err := h.Animals.Create(ctx, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, a)
}

// Patch handles PATCH /api/animals/:id with a JSON Patch or Merge Patch body.
func (h *AnimalHandler) Patch(c echo.Context) error {
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

    a, err := h.Animals.Patch(ctx, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/animals/:id.  Reservations, examinations
// and medications of the animal go with it.
func (h *AnimalHandler) Delete(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    if err := h.Animals.Delete(ctx, id); err != nil {
        return err
    }
    return c.NoContent(http.StatusNoContent)
}

// Reservations handles GET /api/animals/:id/reservations.
func (h *AnimalHandler) Reservations(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Animals.Reservations(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

// Examinations handles GET /api/animals/:id/examinations.
func (h *AnimalHandler) Examinations(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Animals.Examinations(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}

// Medications handles GET /api/animals/:id/medications.
func (h *AnimalHandler) Medications(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    items, err := h.Animals.Medications(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, items)
}
