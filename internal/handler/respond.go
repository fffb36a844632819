package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
)

// redirectWithError flashes the user-facing message for err and redirects to target.
func redirectWithError(c echo.Context, err error, target string) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	AddFlash(c, FlashDanger, httpErr.Message)
	return c.Redirect(http.StatusSeeOther, target)
}

// jsonError answers a JSON route with the mapped status and error body.
func jsonError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func parseProductID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return uuid.Nil, errors.ErrNotFound
	}
	return id, nil
}
