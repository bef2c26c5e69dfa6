package middleware

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"unimarket/internal/auth"
	apperrors "unimarket/internal/errors"
	"unimarket/internal/service"
)

// UserContextKey is where the resolved user is stored on the request context.
const UserContextKey = "currentUser"

// claimsContextKey is where echo-jwt stores the parsed token claims.
const claimsContextKey = "user"

// JWT returns bearer-token middleware. Token parsing is delegated to the
// application's token service so issue and verify share one code path.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// LoadUser resolves the token subject to a stored user and puts it on the
// context. A subject deleted after token issue yields 404.
func LoadUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*auth.Claims)
			if !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			user, err := authService.CurrentUser(c.Request().Context(), claims.Subject)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
