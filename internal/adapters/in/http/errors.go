package http

import (
	"errors"
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrOrderingWindowClosed is returned for order creation outside the ordering window.
var ErrOrderingWindowClosed = errors.New("ordering window is closed")

const internalErrorMessage = "internal error"

type stockDetails struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available *int   `json:"available,omitempty"`
}

// fail writes the error response of err. Anything unclassified is logged and
// answered with an opaque 500.
func (s *Server) fail(c echo.Context, err error) error {
	resp := classify(err)
	if resp.Code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(resp.Code, resp)
}

func classify(err error) ErrorResponse {
	var stockErr *product.InsufficientStockError
	if errors.As(err, &stockErr) {
		details := stockDetails{ProductID: stockErr.ProductID.String(), Requested: stockErr.Requested}
		if stockErr.Available >= 0 {
			available := stockErr.Available
			details.Available = &available
		}
		return ErrorResponse{Code: http.StatusUnprocessableEntity, Message: err.Error(), Details: details}
	}

	switch {
	case errors.Is(err, commands.ErrOrderNotFound), errors.Is(err, errs.ErrObjectNotFound):
		return ErrorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, order.ErrInvalidStateTransition):
		return ErrorResponse{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrOrderingWindowClosed):
		return ErrorResponse{Code: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrItemsAreRequired):
		return ErrorResponse{Code: http.StatusBadRequest, Message: err.Error()}
	}

	return ErrorResponse{Code: http.StatusInternalServerError, Message: internalErrorMessage}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

// parseID parses a path or body identifier, reporting failures as invalid values.
func parseID(name, value string) (kernel.UUID, error) {
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseOptionalID(name, value string) (*kernel.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(name, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
