package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/dto"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// AuthHandler serves /api/authentication.
type AuthHandler struct {
    Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
    return &AuthHandler{Auth: a}
}

// Register: self sign-up as a volunteer; returns the user and a token.
func (h *AuthHandler) Register(c echo.Context) error {
    var req dto.RegisterRequest
    if err := bind(c, &req); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    out, err := h.Auth.Register(ctx, req)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusCreated, out)
}

// Login: verify credentials and issue an access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req dto.LoginRequest
    if err := bind(c, &req); err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    out, err := h.Auth.Login(ctx, req)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, out)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
    a, err := actor(c)
    if err != nil {
        return err
    }
    ctx, cancel := withTimeout(c)
    defer cancel()

    u, err := h.Auth.Me(ctx, a)
    if err != nil {
        return err
    }
    return c.JSON(http.StatusOK, u)
}
