package httpapi

import (
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/labstack/echo/v4"
)

// accessLog writes one debug line per request, tagged with the request id the
// client sent (or the one the RequestID middleware generated).
func (h *Handler) accessLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		h.logger.Debug(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"request_id", c.Response().Header().Get(common.RequestIDHeaderName),
			"duration", time.Since(start),
		)
		return nil
	}
}
