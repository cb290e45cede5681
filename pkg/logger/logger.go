package logger

import (
	"context"
	"os"

	"github.com/alesweet/order-service/internal/config"
	"github.com/go-chi/chi/v5/middleware"
	sqldblogger "github.com/simukti/sqldb-logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface the application codes against.
// It wraps zap's sugared logger and knows how to enrich entries
// with request-scoped values from the context.
type Logger interface {
	// With returns a logger based off the root logger and decorated
	// with the given context and arguments.
	With(ctx context.Context, args ...interface{}) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// Log implements the sqldb-logger interface so the same logger
	// can be plugged into the database driver.
	Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{})

	// Sync flushes any buffered log entries.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

// New creates a new logger using the application configuration.
// Entries go to stdout and, when a path is configured, to a
// size-rotated file as well.
func New(cfg *config.Config) Logger {
	level := zap.InfoLevel
	if err := level.Set(cfg.Logger.Level); err != nil {
		level = zap.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	sink := zapcore.AddSync(os.Stdout)
	if cfg.Logger.Path != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Path,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
		})
		sink = zapcore.NewMultiWriteSyncer(sink, rotated)
	}

	core := zapcore.NewCore(encoder, sink, level)

	return NewWithZap(zap.New(core, zap.AddCaller()))
}

// NewWithZap creates a new logger using the preconfigured zap logger.
func NewWithZap(l *zap.Logger) Logger {
	return &logger{l.Sugar()}
}

// With returns a logger based off the root logger and decorated with the
// given context and arguments. The request ID is appended when present.
func (l *logger) With(ctx context.Context, args ...interface{}) Logger {
	if ctx != nil {
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			args = append(args, zap.String("request_id", reqID))
		}
	}
	if len(args) > 0 {
		return &logger{l.SugaredLogger.With(args...)}
	}
	return l
}

// Log prints database query logs with the appropriate level.
func (l *logger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	args := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}

	entry := l.With(ctx).(*logger).SugaredLogger

	switch level {
	case sqldblogger.LevelError:
		entry.Errorw(msg, args...)
	case sqldblogger.LevelInfo:
		entry.Infow(msg, args...)
	default:
		entry.Debugw(msg, args...)
	}
}
