package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"moviewatch/docs"
	"moviewatch/internal/auth"
	"moviewatch/internal/cache"
	"moviewatch/internal/config"
	"moviewatch/internal/db"
	"moviewatch/internal/handler"
	"moviewatch/internal/logging"
	"moviewatch/internal/repository"
	"moviewatch/internal/router"
	"moviewatch/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Watchlist API
// @version 1.0
// @description Movie catalogue and personal watchlists with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, logging.NewGormLogger(log, cfg.Env))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.WithError(err).Warn("close cache")
		}
	}()
	if cacheClient == nil {
		log.Info("REDIS_ADDR not set, movie list cache disabled")
	} else if err := pingCache(cacheClient); err != nil {
		log.WithError(err).Warn("redis unreachable, movie list will be served from the database")
	}

	e := echo.New()
	registerAPI(e, cfg, log, gormDB, cacheClient)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "db": cfg.DBDriver}).Info("server starting")
		log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func registerAPI(e *echo.Echo, cfg *config.Config, log *logrus.Logger, gormDB *gorm.DB, cacheClient *cache.Client) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	authGate := auth.Gate(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	movieService := service.NewMovieService(movieRepo, cacheClient)
	watchlistService := service.NewWatchlistService(watchlistRepo, movieRepo)

	router.Register(e, cfg, log, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, jwtService, cfg.IsProduction()),
		Movies:    handler.NewMovieHandler(movieService),
		Watchlist: handler.NewWatchlistHandler(watchlistService),
	}, authGate, func(ctx context.Context) error {
		return db.Ping(ctx, gormDB)
	})
}

func pingCache(c *cache.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.Ping(ctx)
}
