package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "15:04:05 02-01-2006"

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a logger writing to stdout. Console output is colored and human oriented,
// json output is meant for log shippers.
func New(logLvl, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(logLvl)
	if err != nil {
		return nil, fmt.Errorf("unsupported log lvl: %s", logLvl)
	}

	var encodeConfig zapcore.EncoderConfig
	switch format {
	case FormatConsole, "":
		format = FormatConsole
		encodeConfig = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		}
	case FormatJSON:
		encodeConfig = zap.NewProductionEncoderConfig()
		encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         format,
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to create zap logger, error: %w", err)
	}
	return logger, nil
}

// InitLogger replaces the global zap logger used across the service.
func InitLogger(logLvl, format string) error {
	logger, err := New(logLvl, format)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
