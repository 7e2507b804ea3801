package http

import (
	"errors"
	"net/http"

	"procurement/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// recordMetrics counts requests by route template and final status.
func (s *Server) recordMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		} else if err != nil && !c.Response().Committed {
			status = http.StatusInternalServerError
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.HTTPRequest(c.Request().Method, path, status)
		return err
	}
}

// requireOpenWindow rejects order creation while the ordering window is closed.
func (s *Server) requireOpenWindow(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		open, err := s.handlers.WindowState.Handle(c.Request().Context(), queries.NewGetWindowStateQuery())
		if err != nil {
			return s.fail(c, err)
		}
		if !open {
			return s.fail(c, ErrOrderingWindowClosed)
		}
		return next(c)
	}
}
