package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/utils"
)

// Context keys set by SessionAuth.
const (
	CtxUserEmail = "user_email"
	CtxSession   = "session"
)

// SessionAuth returns an Echo middleware that validates the signed session
// cookie and injects the owner's email into the request context.  Requests
// without a valid, unexpired cookie are answered with 401 before reaching
// the handler.
func SessionAuth(codec *utils.SessionCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(utils.SessionCookieName)
			if err != nil || ck.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			payload, ok := codec.Read(ck.Value)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set(CtxUserEmail, payload.Email)
			c.Set(CtxSession, payload)
			return next(c)
		}
	}
}
