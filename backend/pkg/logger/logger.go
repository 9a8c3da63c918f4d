// Package logger owns the process-wide zap logger and hands out named
// children per component.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "post-spot"

var (
	mu     sync.RWMutex
	global *zap.Logger

	fallbackOnce sync.Once
	fallback     *zap.Logger
)

// New builds a logger for env. Production writes JSON, anything else writes
// colored console output. An empty level picks info for production and debug
// otherwise.
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := parseLevel(env, level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build(zap.Fields(
		zap.String("service", serviceName),
		zap.String("env", env),
	))
}

func parseLevel(env, level string) (zapcore.Level, error) {
	if level == "" {
		if env == "production" {
			return zapcore.InfoLevel, nil
		}
		return zapcore.DebugLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Init builds the process logger and installs it for Get and Named
func Init(env, level string) error {
	l, err := New(env, level)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces the process logger
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// Sync flushes any buffered log entries
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		_ = global.Sync()
	}
}

// Get returns the process logger. Before Init it returns a shared
// development logger so tools and tests still get output.
func Get() *zap.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}

	fallbackOnce.Do(func() {
		dev, err := zap.NewDevelopment()
		if err != nil {
			dev = zap.NewNop()
		}
		fallback = dev
	})
	return fallback
}

// Named returns a child of the process logger tagged with component
func Named(component string) *zap.Logger {
	return Get().Named(component)
}
