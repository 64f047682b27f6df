package middleware

// identity.go holds helpers for reading the authenticated user out of the
// Echo context.  SessionAuth stores the email; unauthenticated requests are
// reported as "anon".

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/utils"
)

// UserEmail returns the email SessionAuth stored in context, or "".
func UserEmail(c echo.Context) string {
	if s, ok := c.Get(CtxUserEmail).(string); ok {
		return s
	}
	return ""
}

// Session returns the verified session payload stored by SessionAuth.
func Session(c echo.Context) (utils.SessionPayload, bool) {
	p, ok := c.Get(CtxSession).(utils.SessionPayload)
	return p, ok
}

// currentUserID identifies the caller for rate-limit keys.
func currentUserID(c echo.Context) string {
	if s := UserEmail(c); s != "" {
		return s
	}
	return "anon"
}
