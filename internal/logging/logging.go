package logging

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"moviewatch/internal/config"
)

// New builds the process logger: JSON at info level in production, text at
// warn level under tests and text at debug level otherwise.
func New(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	switch env {
	case config.EnvProduction:
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	case config.EnvTest:
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// RequestLogger logs one structured line per HTTP request.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			switch {
			case v.Error != nil && v.Status >= 500:
				entry.WithError(v.Error).Error("request failed")
			case v.Error != nil:
				entry.WithError(v.Error).Info("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}

// GormLogger adapts logrus to gorm's logger interface. In development every
// statement is traced; otherwise only errors and slow queries are reported.
type GormLogger struct {
	log           logrus.FieldLogger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger whose verbosity follows the run mode.
func NewGormLogger(log logrus.FieldLogger, env string) *GormLogger {
	level := gormlogger.Warn
	if env == config.EnvDevelopment {
		level = gormlogger.Info
	}
	return &GormLogger{log: log, level: level, slowThreshold: 200 * time.Millisecond}
}

// LogMode implements gormlogger.Interface.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Infof(msg, args...)
	}
}

// Warn implements gormlogger.Interface.
func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warnf(msg, args...)
	}
}

// Error implements gormlogger.Interface.
func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Errorf(msg, args...)
	}
}

// Trace implements gormlogger.Interface.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithFields(logrus.Fields{"elapsed": elapsed.String(), "rows": rows, "sql": sql})

	switch {
	// Not-found and constraint violations are expected outcomes handled by the services.
	case err != nil && l.level >= gormlogger.Error && !isExpected(err):
		entry.WithError(err).Error("query failed")
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		entry.Warn("slow query")
	case l.level >= gormlogger.Info:
		entry.Debug("query")
	}
}

func isExpected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}
