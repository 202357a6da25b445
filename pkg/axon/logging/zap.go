package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap adapts a zap logger to the printf-style methods the registrar calls
type Zap struct {
	sugar *zap.SugaredLogger
}

// NewZap wraps logger. A nil logger is replaced by zap.NewNop.
func NewZap(logger *zap.Logger) *Zap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zap{sugar: logger.Sugar()}
}

// NewZapLogger builds a production or development zap logger at level
func NewZapLogger(level Level, development bool) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	switch level {
	case LevelSilent:
		return zap.NewNop(), nil
	case LevelError:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	case LevelWarn:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case LevelInfo, LevelVerbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case LevelDebug:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		return nil, fmt.Errorf("unsupported level %s", level)
	}

	return cfg.Build()
}

func (z *Zap) Debug(format string, args ...interface{}) { z.sugar.Debugf(format, args...) }
func (z *Zap) Info(format string, args ...interface{})  { z.sugar.Infof(format, args...) }
func (z *Zap) Warn(format string, args ...interface{})  { z.sugar.Warnf(format, args...) }
func (z *Zap) Error(format string, args ...interface{}) { z.sugar.Errorf(format, args...) }

// Sync flushes buffered log entries
func (z *Zap) Sync() error {
	return z.sugar.Sync()
}
