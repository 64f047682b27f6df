package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/stats"
)

// Analyze builds a dashboard for an uploaded CSV without storing anything.
// Rows without a date or first_serves_attempted are dropped.
func Analyze(c echo.Context) error {
	records, err := readCSVUpload(c)
	if err != nil {
		return uploadError(c, err)
	}
	return c.JSON(http.StatusOK, stats.BuildDashboard(stats.Sanitize(records)))
}
