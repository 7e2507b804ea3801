package http

import (
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetWindow handles GET /api/v1/window.
func (s *Server) GetWindow(c echo.Context) error {
	open, err := s.handlers.WindowState.Handle(c.Request().Context(), queries.NewGetWindowStateQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, WindowResponse{Open: open})
}

// SetWindow handles PUT /api/v1/window.
func (s *Server) SetWindow(c echo.Context) error {
	var req SetWindowRequest
	if err := c.Bind(&req); err != nil || req.Open == nil {
		return badRequest(c, "Request body must contain \"open\"")
	}

	if err := s.handlers.SetWindow.Handle(c.Request().Context(), commands.NewSetOrderingWindowCommand(*req.Open)); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, WindowResponse{Open: *req.Open})
}

// ToggleWindow handles POST /api/v1/window/toggle.
func (s *Server) ToggleWindow(c echo.Context) error {
	open, err := s.handlers.ToggleWindow.Handle(c.Request().Context(), commands.NewToggleOrderingWindowCommand())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, WindowResponse{Open: open})
}
