package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/stats"
)

// ProsHandler serves the pro comparison table loaded at startup.  Table is
// nil when the sample CSV could not be read.
type ProsHandler struct {
	Table *stats.ProTable
}

func NewProsHandler(table *stats.ProTable) *ProsHandler {
	return &ProsHandler{Table: table}
}

// List returns the player names in file order.
func (h *ProsHandler) List(c echo.Context) error {
	if h.Table == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Pro comparison data unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"players": h.Table.Players()})
}

// Get returns one player's averaged KPIs and per-surface series.
func (h *ProsHandler) Get(c echo.Context) error {
	if h.Table == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Pro comparison data unavailable"})
	}
	name := c.Param("player")
	if un, err := url.PathUnescape(name); err == nil {
		name = un
	}
	view, ok := h.Table.Player(name)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Player not found"})
	}
	return c.JSON(http.StatusOK, view)
}
