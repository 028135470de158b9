package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	apperrors "moviewatch/internal/errors"
	"moviewatch/internal/model"
)

const (
	userIDContextKey = "auth.user_id"
	userContextKey   = "auth.user"

	bearerPrefix = "Bearer "
)

var (
	errMissingToken    = errors.New("missing session token")
	errMalformedBearer = errors.New("malformed bearer authorization header")
)

// UserLookup resolves the user a verified token refers to.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate rejects requests without a valid session and attaches the resolved
// user to the context for CurrentUser.
func Gate(tokens *JWTService, users UserLookup) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookupFuncs: []middleware.ValuesExtractor{sessionToken},
		ContextKey:       userIDContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		ErrorHandler: func(_ echo.Context, _ error) error {
			return apperrors.ErrUnauthenticated
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolveUser(users, next))
	}
}

func resolveUser(users UserLookup, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get(userIDContextKey).(uuid.UUID)
		if !ok {
			return apperrors.ErrUnauthenticated
		}

		user, err := users.FindByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUnauthenticated
			}
			return fmt.Errorf("resolve session user: %w", err)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser returns the user attached by Gate, or nil outside a gated route.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// sessionToken extracts exactly one token. An Authorization header wins
// whenever it is present, even if it turns out to be invalid; the session
// cookie is only read when no header was sent.
func sessionToken(c echo.Context) ([]string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return nil, errMalformedBearer
		}
		return []string{header[len(bearerPrefix):]}, nil
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errMissingToken
	}
	return []string{cookie.Value}, nil
}
