package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/server/models"
	"github.com/labstack/echo/v4"
)

var (
	errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	errBadBody      = echo.NewHTTPError(http.StatusBadRequest, "Malformed request body")
)

// classify maps domain errors to an HTTP status and a client-facing message.
// Unknown errors are 500 with a generic message.
func classify(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, common.ErrTokenRevoked):
		return http.StatusUnauthorized, "Session already closed"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, common.ErrorUserExists):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, "Invalid registration data"
	case errors.Is(err, common.ErrEncryption):
		return http.StatusBadRequest, "Password envelope cannot be opened"
	case errors.Is(err, common.ErrNonceMissing), errors.Is(err, common.ErrNonceMismatch):
		return http.StatusBadRequest, "Invalid request nonce"
	case errors.Is(err, common.ErrNonceExpired), errors.Is(err, common.ErrNonceReplayed):
		return http.StatusUnauthorized, "Request expired or already processed"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// errorHandler renders every error as an AuthResponse so clients can decode
// replies the same way regardless of status.
func (h *Handler) errorHandler(err error, c echo.Context) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	} else {
		h.logger.Info(c.Request().Context(), "request rejected", "path", c.Path(), "status", code, "reason", err.Error())
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, models.AuthResponse{Success: false, Message: msg})
	}
	if err != nil {
		h.logger.Error(c.Request().Context(), "write error reply", "error", err)
	}
}
