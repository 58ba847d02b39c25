package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "strings" // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/animal-shelter/internal/apperror"
    "github.com/iliyamo/animal-shelter/internal/utils"
)

// Context keys set by JWTAuth.
const (
    CtxUserID = "user_id" // uint64
    CtxRole   = "role"    // string
    CtxEmail  = "email"   // string
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject, role and email claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  Handlers read the caller via `c.Get("user_id")` and
// `c.Get("role")`.  Failures are returned as apperror values so the
// central error handler renders them.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return apperror.Unauthorized("missing bearer token")
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return apperror.Unauthorized("invalid token")
            }

            c.Set(CtxUserID, claims.UserID)
            c.Set(CtxRole, claims.Role)
            c.Set(CtxEmail, claims.Email)
            return next(c)
        }
    }
}
