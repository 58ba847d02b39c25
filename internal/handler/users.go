package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/dto"
    "github.com/iliyamo/animal-shelter/internal/model"
    "github.com/iliyamo/animal-shelter/internal/repository"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// UserHandler serves the administrator's /api/users endpoints.
type UserHandler struct {
    Users *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
    return &UserHandler{Users: s}
}

// userFilter reads email, phone, role, page and page_size.
func userFilter(c echo.Context) (repository.UserFilter, error) {
    var (
        f    repository.UserFilter
        role string
    )
    errs := echo.QueryParamsBinder(c).FailFast(false).
        String("email", &f.Email).
        String("phone", &f.Phone).
        String("role", &role).
        Int("page", &f.Page.Page).
        Int("page_size", &f.PageSize).
        BindErrors()
    if err := bindErrors(errs); err != nil {
        return f, err
    }
    f.Email = strings.TrimSpace(f.Email)
    f.Phone = strings.TrimSpace(f.Phone)
    f.Role = model.Role(strings.ToUpper(strings.TrimSpace(role)))
    return f, nil
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
    f, err := userFilter(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    page, err := h.Users.List(ctx, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    u, err := h.Users.Get(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, u)
}

// Create handles POST /api/users; any role may be created here.
func (h *UserHandler) Create(c echo.Context) error {
    var in dto.UserCreate
    if err := bind(c, &in); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    u, err := h.Users.Create(ctx, in)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, u)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
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

    if err := h.Users.Delete(ctx, a, id); err != nil {
        return err
    }
    return c.NoContent(http.StatusNoContent)
}

// VolunteerHandler serves the caretaker's /api/volunteers endpoints.
type VolunteerHandler struct {
    Volunteers *service.VolunteerService
}

func NewVolunteerHandler(s *service.VolunteerService) *VolunteerHandler {
    return &VolunteerHandler{Volunteers: s}
}

// List handles GET /api/volunteers.  A role query parameter is ignored.
func (h *VolunteerHandler) List(c echo.Context) error {
    f, err := userFilter(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    page, err := h.Volunteers.List(ctx, f)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/volunteers/:id.
func (h *VolunteerHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    v, err := h.Volunteers.Get(ctx, id)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, v)
}

// Patch handles PATCH /api/volunteers/:id: verification, status and
// contact fields.
func (h *VolunteerHandler) Patch(c echo.Context) error {
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

    v, err := h.Volunteers.Patch(ctx, id, p)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, v)
}
