package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"unimarket/internal/auth"
)

// RequestLogger logs one structured line per request: client IP, resolved
// bearer subject (or "anonymous"/"invalid_token"), method, path, status, and
// duration. Token contents beyond the subject are never logged.
func RequestLogger(log *logrus.Logger, jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			username := "anonymous"
			if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
				if claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
					username = claims.Subject
				} else {
					username = "invalid_token"
				}
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.WithFields(logrus.Fields{
				"ip":         c.RealIP(),
				"user":       username,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"user_agent": c.Request().UserAgent(),
				"status":     c.Response().Status,
				"duration":   time.Since(start).Round(time.Millisecond).String(),
			}).Info("request completed")

			return err
		}
	}
}
