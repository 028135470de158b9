package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"moviewatch/internal/auth"
	"moviewatch/internal/errors"
	"moviewatch/internal/model"
)

// normalizer is implemented by requests that clean up their fields before
// validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.NewValidationError("invalid request body")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

// pathID parses the :id path parameter. A malformed id cannot name an existing
// resource, so it is reported with the resource's not-found error.
func pathID(c echo.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// caller returns the authenticated user or ErrUnauthenticated.
func caller(c echo.Context) (*model.User, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}
	return user, nil
}
