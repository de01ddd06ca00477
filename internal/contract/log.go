package contract

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for file logging.
const (
	logMaxSizeMB  = 20
	logMaxBackups = 3
	logMaxAgeDays = 14
)

// ParseLogLevel converts a level name into a zap level.
func ParseLogLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", level)
	}
	return l, nil
}

// NewLogger builds a zap logger. Stdout is reserved for the stdio MCP transport,
// so logs go to stderr, or to a rotated JSON file when logFile is set.
func NewLogger(level, logFile string) (*zap.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	var core zapcore.Core
	if logFile != "" {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		})
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, lvl)
	} else {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), lvl)
	}
	return zap.New(core, zap.AddCaller()), nil
}

// InitLogger builds a logger and installs it as the zap global.
func InitLogger(level, logFile string) (*zap.Logger, error) {
	logger, err := NewLogger(level, logFile)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
