package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/court-metrics/internal/handler"
	"github.com/iliyamo/court-metrics/internal/middleware"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// UploadLimit caps CSV uploads and match bodies.
const UploadLimit = "2M"

// RegisterMatches registers the signed-in user's match routes.  Every
// route requires a valid session cookie.
func RegisterMatches(e *echo.Echo, h *handler.MatchHandler, codec *utils.SessionCodec) {
	g := e.Group("/matches", middleware.SessionAuth(codec), echomw.BodyLimit(UploadLimit))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/import", h.Import)
	g.GET("/stats", h.Stats)
}
