package middleware // middleware provides shared request processing for handlers

import (
    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/animal-shelter/internal/apperror"
    "github.com/iliyamo/animal-shelter/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  It assumes JWTAuth
// ran first and stored the role under "role".  Any other role is
// aborted with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[string(r)] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(string)
            if !ok || role == "" {
                return apperror.Unauthorized("authentication required")
            }
            if !allowed[role] {
                return apperror.Forbidden("forbidden")
            }
            return next(c)
        }
    }
}
