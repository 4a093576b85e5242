package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AccessClaims is the minimal claim set the admin surface consumes. Issuing
// and refreshing tokens is someone else's job; this service only verifies.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin gates a route behind an HS256 bearer token with role=admin.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == "" || raw == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims := &AccessClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			if claims.Role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set("user_id", claims.Subject)
			return next(c)
		}
	}
}
