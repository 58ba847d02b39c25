package handler

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog/log"

    "github.com/iliyamo/animal-shelter/internal/apperror"
)

// statusOf maps an error kind to its HTTP status.
var statusOf = map[apperror.Kind]int{
    apperror.KindNotFound:     http.StatusNotFound,
    apperror.KindValidation:   http.StatusBadRequest,
    apperror.KindDuplicate:    http.StatusConflict,
    apperror.KindConflict:     http.StatusConflict,
    apperror.KindUnauthorized: http.StatusUnauthorized,
    apperror.KindForbidden:    http.StatusForbidden,
    apperror.KindInternal:     http.StatusInternalServerError,
}

// ErrorHandler is installed as echo's HTTPErrorHandler.  Handlers and
// middleware return errors; this is the only place they become
// responses.  Unhandled errors carry their raw message.
func ErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    status, body := errorResponse(err)
    if c.Request().Method == http.MethodHead {
        err = c.NoContent(status)
    } else {
        err = c.JSON(status, body)
    }
    if err != nil {
        log.Error().Err(err).Msg("write error response")
    }
}

func errorResponse(err error) (int, echo.Map) {
    var ae *apperror.Error
    if errors.As(err, &ae) {
        status, ok := statusOf[ae.Kind]
        if !ok {
            status = http.StatusInternalServerError
        }
        switch ae.Kind {
        case apperror.KindValidation:
            return status, echo.Map{"error": ae.Message, "errors": ae.Fields}
        case apperror.KindInternal:
            return status, echo.Map{"error": ae.Error()}
        }
        return status, echo.Map{"error": ae.Message}
    }

    // routing errors (404/405), body binding and the like
    var he *echo.HTTPError
    if errors.As(err, &he) {
        msg := he.Message
        if m, ok := msg.(string); ok {
            return he.Code, echo.Map{"error": m}
        }
        return he.Code, echo.Map{"error": fmt.Sprint(msg)}
    }
    return http.StatusInternalServerError, echo.Map{"error": err.Error()}
}
