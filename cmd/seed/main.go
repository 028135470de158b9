package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"moviewatch/internal/auth"
	"moviewatch/internal/config"
	"moviewatch/internal/db"
	apperrors "moviewatch/internal/errors"
	"moviewatch/internal/logging"
	"moviewatch/internal/repository"
	"moviewatch/internal/service"
)

//go:embed movies.json
var catalogue []byte

// seedMovie mirrors the JSON layout of movies.json.
type seedMovie struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseYear int      `json:"releaseYear"`
	Genre       []string `json:"genre"`
	Runtime     int      `json:"runtime"`
	PosterURL   string   `json:"posterUrl"`
}

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("seed failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	movies, err := loadCatalogue(catalogue)
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, logging.NewGormLogger(log, cfg.Env))
	if err != nil {
		return err
	}
	defer closeDB(log, gormDB)
	log.Info("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn))
	// No cache: the running server's list entry expires on its own.
	movieService := service.NewMovieService(repository.NewMovieRepository(gormDB), nil)

	ctx := context.Background()
	ownerID, err := ensureOwner(ctx, authService, userRepo,
		getEnv("SEED_USER_EMAIL", "seed@moviewatch.local"),
		getEnv("SEED_USER_NAME", "Seed User"),
		getEnv("SEED_USER_PASSWORD", "seed-password"),
	)
	if err != nil {
		return err
	}

	created, skipped, err := seedMovies(ctx, movieService, ownerID, movies)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"created": created,
		"skipped": skipped,
		"total":   len(movies),
	}).Info("Seed completed successfully")
	return nil
}

// closeDB releases the connection pool and reports a failure to do so.
func closeDB(log logrus.FieldLogger, gormDB *gorm.DB) {
	if err := db.Close(gormDB); err != nil {
		log.WithError(err).Warn("close database")
	}
}

func loadCatalogue(data []byte) ([]seedMovie, error) {
	var movies []seedMovie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parse movie catalogue: %w", err)
	}
	return movies, nil
}

// ensureOwner registers the seed user, or looks it up when it already exists.
func ensureOwner(ctx context.Context, authService service.AuthService, users repository.UserRepository, email, name, password string) (uuid.UUID, error) {
	user, err := authService.Register(ctx, name, email, password)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserAlreadyExists) {
		return uuid.Nil, fmt.Errorf("register seed user: %w", err)
	}

	user, err = users.FindByEmail(ctx, service.NormalizeEmail(email))
	if err != nil {
		return uuid.Nil, fmt.Errorf("find seed user: %w", err)
	}
	return user.ID, nil
}

// seedMovies creates every catalogue entry owned by ownerID. Movies that
// already exist are skipped.
func seedMovies(ctx context.Context, movies service.MovieService, ownerID uuid.UUID, catalogue []seedMovie) (created int, skipped int, err error) {
	for _, m := range catalogue {
		overview, runtime, poster := m.Overview, m.Runtime, m.PosterURL
		_, err := movies.Create(ctx, ownerID, service.MovieInput{
			Title:       m.Title,
			Overview:    &overview,
			ReleaseYear: m.ReleaseYear,
			Genre:       m.Genre,
			Runtime:     &runtime,
			PosterURL:   &poster,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrMovieExists):
			skipped++
		default:
			return created, skipped, fmt.Errorf("create movie %q: %w", m.Title, err)
		}
	}
	return created, skipped, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
