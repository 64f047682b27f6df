package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/handler"
	"github.com/iliyamo/court-metrics/internal/middleware"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no request body: the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Credential endpoints
// sit behind the rate limiter; /auth/me requires a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, codec *utils.SessionCodec, limiter echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", a.Register, limiter)
	g.POST("/login", a.Login, limiter)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.SessionAuth(codec))
}
