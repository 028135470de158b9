package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "moviewatch/internal/errors"
)

// ErrorHandler renders every error returned by a handler or middleware as an
// apperrors.ErrorResponse. Outside production the cause of a 500 is exposed
// in the debug field.
func ErrorHandler(log logrus.FieldLogger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		resp := httpErr.ToErrorResponse()

		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Path(),
			}).WithError(err).Error("unhandled error")
			if !production && httpErr.Internal != nil {
				resp.Debug = httpErr.Internal.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, resp)
		}
		if err != nil {
			log.WithError(err).Warn("write error response")
		}
	}
}

// toHTTPError maps domain errors through apperrors and keeps the status of
// Echo's own errors (unknown route, wrong method, oversized body).
func toHTTPError(err error) *apperrors.HTTPError {
	var appErr *apperrors.HTTPError
	if errors.As(err, &appErr) {
		return appErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		return apperrors.NewHTTPError(echoErr.Code, strings.ToLower(fmt.Sprint(echoErr.Message)), statusCode(echoErr.Code))
	}

	return apperrors.MapErrorToHTTP(err)
}

// statusCode turns a status into an error code, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
