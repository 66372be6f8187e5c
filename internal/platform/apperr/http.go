package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// response is the wire shape every error renders to.
type response struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func httpStatus(k Kind) int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler returns an echo HTTPErrorHandler that renders *Error values
// with their kind and message, and collapses everything else to a bare
// internal error. In development the underlying message is passed through to
// ease debugging.
func ErrorHandler(logger zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := response{Kind: KindInternal, Message: "internal server error"}
		status := http.StatusInternalServerError

		var ae *Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			resp.Kind = ae.Kind
			resp.Message = ae.Message
			resp.Field = ae.Field
			status = httpStatus(ae.Kind)
		case errors.As(err, &he):
			status = he.Code
			resp.Kind = kindForStatus(he.Code)
			if msg, ok := he.Message.(string); ok {
				resp.Message = msg
			}
		default:
			if dev {
				resp.Message = err.Error()
			}
		}

		if status >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalid
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return KindExhausted
	default:
		return KindInternal
	}
}
