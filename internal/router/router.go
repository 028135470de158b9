package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"moviewatch/internal/config"
	"moviewatch/internal/handler"
	"moviewatch/internal/logging"
	"moviewatch/internal/metrics"
	"moviewatch/internal/validation"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth      *handler.AuthHandler
	Movies    *handler.MovieHandler
	Watchlist *handler.WatchlistHandler
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

// Register wires middleware and routes. authGate guards every route that
// needs a logged-in user.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	h Handlers,
	authGate echo.MiddlewareFunc,
	health HealthCheck,
) {
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(log, cfg.IsProduction())

	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		if err := health(c.Request().Context()); err != nil {
			log.WithError(err).Warn("health check failed")
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", h.Auth.Me, authGate)

	movies := e.Group("/movies")
	movies.GET("", h.Movies.ListMovies)
	movies.GET("/:id", h.Movies.GetMovie)
	movies.POST("", h.Movies.CreateMovie, authGate)
	movies.PUT("/:id", h.Movies.UpdateMovie, authGate)
	movies.DELETE("/:id", h.Movies.DeleteMovie, authGate)

	watchlist := e.Group("/watchlist", authGate)
	watchlist.GET("", h.Watchlist.ListWatchlist)
	watchlist.POST("", h.Watchlist.AddToWatchlist)
	watchlist.PUT("/:id", h.Watchlist.UpdateWatchlistItem)
	watchlist.DELETE("/:id", h.Watchlist.RemoveFromWatchlist)
}
