package handler // handler holds the HTTP endpoints; each one binds, calls a service and writes JSON

import (
    "context"       // per-request deadline for store calls
    "errors"        // errors.As for binding errors
    "io"            // reading raw patch documents
    "net/http"      // status codes
    "strconv"       // id parsing
    "time"          // timeout duration

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/iliyamo/animal-shelter/internal/apperror"
    "github.com/iliyamo/animal-shelter/internal/middleware"
    "github.com/iliyamo/animal-shelter/internal/model"
    "github.com/iliyamo/animal-shelter/internal/service"
)

// requestTimeout bounds every service call made by a handler.
const requestTimeout = 5 * time.Second

// maxPatchBytes caps the size of a partial update document.
const maxPatchBytes = 1 << 20

// withTimeout derives the store context from the request context.
func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// actor reads the caller stored by JWTAuth.
func actor(c echo.Context) (service.Actor, error) {
    id, ok := c.Get(middleware.CtxUserID).(uint64)
    role, _ := c.Get(middleware.CtxRole).(string)
    if !ok || id == 0 || role == "" {
        return service.Actor{}, apperror.Unauthorized("authentication required")
    }
    return service.Actor{ID: id, Role: model.Role(role)}, nil
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, apperror.InvalidField("id", "must be a positive integer")
    }
    return id, nil
}

// bind decodes the JSON body into v.
func bind(c echo.Context, v any) error {
    if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
        var he *echo.HTTPError
        if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
            return he
        }
        return apperror.InvalidField("body", "malformed JSON document")
    }
    return nil
}

// readPatch captures the raw body and its media type so the service can
// tell JSON Patch from Merge Patch.
func readPatch(c echo.Context) (service.Patch, error) {
    body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPatchBytes+1))
    if err != nil {
        return service.Patch{}, apperror.InvalidField("body", "could not read request body")
    }
    if len(body) > maxPatchBytes {
        return service.Patch{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "patch document too large")
    }
    return service.Patch{ContentType: c.Request().Header.Get(echo.HeaderContentType), Body: body}, nil
}

// bindErrors turns query binding failures into one validation error.
func bindErrors(errs []error) error {
    if len(errs) == 0 {
        return nil
    }
    fields := map[string][]string{}
    for _, err := range errs {
        var be *echo.BindingError
        if errors.As(err, &be) {
            fields[be.Field] = append(fields[be.Field], "must be a number")
        }
    }
    return apperror.Validation(fields)
}

// has reports whether the query parameter was sent with a value.
func has(c echo.Context, name string) bool {
    return c.QueryParam(name) != ""
}
