package http

import (
	"errors"
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/summary"

	"github.com/labstack/echo/v4"
)

// AggregateSummaries handles POST /api/v1/summaries/aggregate. A run in which
// some keys failed answers 207 with the report; the other keys are stored.
func (s *Server) AggregateSummaries(c echo.Context) error {
	var req AggregateSummariesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	from, to, err := parseDayRange(req.From, req.To)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAggregateSummariesCommand(from, to)
	if err != nil {
		return s.fail(c, err)
	}

	report, err := s.handlers.AggregateSummaries.Handle(c.Request().Context(), cmd)
	if errors.Is(err, summary.ErrAggregationPartialFailure) {
		return c.JSON(http.StatusMultiStatus, fromReport(report))
	}
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromReport(report))
}

// GetSummaries handles GET /api/v1/summaries?from=&to=&departmentId=.
func (s *Server) GetSummaries(c echo.Context) error {
	from, to, err := parseDayRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return s.fail(c, err)
	}
	departmentID, err := parseOptionalID("departmentId", c.QueryParam("departmentId"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetSummariesQuery(from, to, departmentID)
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.handlers.Summaries.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromSummaries(rows))
}
