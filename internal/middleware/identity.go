package middleware

// identity.go reads the caller stored by JWTAuth for middleware that
// keys on the user (rate limit, per-user cache entries).

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID returns the authenticated user's id as a string, or "anon"
// when no token was verified on this request.
func userID(c echo.Context) string {
    if id, ok := c.Get(CtxUserID).(uint64); ok && id != 0 {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
