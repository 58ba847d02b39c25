package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/animal-shelter/internal/observability"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestLogger tags every request with an id (the caller's X-Request-ID
// or a new UUID) and writes one zerolog line when it completes.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            id := req.Header.Get(HeaderRequestID)
            if id == "" {
                id = uuid.NewString()
            }
            c.Response().Header().Set(HeaderRequestID, id)
            ctx := observability.WithRequestID(req.Context(), id)
            c.SetRequest(req.WithContext(ctx))

            start := time.Now()
            err := next(c)
            if err != nil {
                // let the error handler write the response so the status is final
                c.Error(err)
            }

            status := c.Response().Status
            logger := observability.LoggerFromContext(ctx)
            ev := logger.Info()
            switch {
            case status >= 500:
                ev = logger.Error().Err(err)
            case status >= 400:
                ev = logger.Warn()
            }
            ev.Str("method", req.Method).
                Str("path", c.Path()).
                Str("uri", req.RequestURI).
                Int("status", status).
                Dur("latency", time.Since(start)).
                Str("ip", c.RealIP()).
                Str("user", userID(c)).
                Msg("request")
            return nil
        }
    }
}
