package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "unimarket/internal/errors"
	"unimarket/internal/middleware"
	"unimarket/internal/model"
)

// domainError translates a service error into an echo HTTPError with the
// standardized body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// currentUser returns the authenticated user resolved by the auth middleware.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*model.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: apperrors.ErrInvalidToken.Error(),
			Code:  "INVALID_TOKEN",
		})
	}
	return user, nil
}
