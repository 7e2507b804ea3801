package http

import (
	"time"

	"procurement/internal/core/application/broadcast"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeWait = 10 * time.Second

// Subscribe handles GET /api/v1/ws. Without departmentId the connection
// follows the global admin channel; with it, that department's channel. Both
// receive ordering-window changes.
func (s *Server) Subscribe(c echo.Context) error {
	departmentID, err := parseOptionalID("departmentId", c.QueryParam("departmentId"))
	if err != nil {
		return s.fail(c, err)
	}

	topics := []string{broadcast.TopicWindow, broadcast.TopicOrders}
	if departmentID != nil {
		topics[1] = broadcast.DepartmentTopic(*departmentID)
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered the request
		s.logger.DebugContext(c.Request().Context(), "Websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	sub := s.hub.Subscribe(topics...)
	defer sub.Close()

	// Clients only listen; reading detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return nil
		case msg, ok := <-sub.C():
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				return nil
			}
		}
	}
}
