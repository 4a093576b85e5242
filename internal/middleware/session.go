package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "session_id"

	sessionMaxAge = 180 * 24 * 60 * 60
)

// Session makes sure every request carries a session ID, minting a cookie on
// first visit. The session is the owner of the cart and favorites blobs.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				sid = ck.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   sessionMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(SessionCookie, sid)
			return next(c)
		}
	}
}

// SessionID reads the session established by Session. Empty means the
// middleware did not run.
func SessionID(c echo.Context) string {
	v, _ := c.Get(SessionCookie).(string)
	return v
}
