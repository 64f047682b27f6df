package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/court-metrics/internal/handler"
)

// RegisterPublic registers the anonymous analytics routes.  The pro
// comparison responses go through the response cache.
func RegisterPublic(e *echo.Echo, pros *handler.ProsHandler, cache echo.MiddlewareFunc) {
	e.POST("/analyze", handler.Analyze, echomw.BodyLimit(UploadLimit))

	g := e.Group("/pros", cache)
	g.GET("", pros.List)
	g.GET("/:player", pros.Get)
}
