package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = 1
	LevelInfo  = 2
	LevelWarn  = 3
	LevelError = 4
	LevelFatal = 5
)

var levels = map[string]int{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
	"fatal": LevelFatal,
}

// ParseLevel maps a level name to one of the Level constants
func ParseLevel(name string) (int, error) {
	level, ok := levels[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func zapLevel(level int) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

// New builds the logger handed to the server, the collection service and the views.
// format is "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel(l))
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 - 15:04:05")
	config.InitialFields = map[string]interface{}{"app": "marketplace"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

var std = zap.NewNop().Sugar()

// SetDefault replaces the logger behind the package level helpers
func SetDefault(logger *zap.Logger) {
	std = logger.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Debugf(format string, a ...interface{}) { std.Debugf(format, a...) }

func Infof(format string, a ...interface{}) { std.Infof(format, a...) }

func Warnf(format string, a ...interface{}) { std.Warnf(format, a...) }

// Errorf logs at error level
func Errorf(format string, a ...interface{}) { std.Errorf(format, a...) }
