// Package logging provides configurable zap logger creation for the Yusr
// server and tools.
package logging

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the log output format.
type Style string

const (
	// StyleTerminal is a human-readable development format.
	StyleTerminal Style = "terminal"
	// StyleJson is machine-readable production output.
	StyleJson Style = "json"
	// StyleNoop discards all log output.
	StyleNoop Style = "noop"
)

// Config selects the style and minimum level of a logger.
type Config struct {
	Style Style  `yaml:"style" json:"style"`
	Level string `yaml:"level" json:"level"`
}

// NewLogger creates a zap logger based on the Config settings.
// If config is nil or has empty values, defaults to terminal style with
// info level. Unknown levels are ignored; an unknown style is fatal.
func NewLogger(c *Config) *zap.Logger {
	var err error
	var logger *zap.Logger

	style := StyleTerminal
	level := zapcore.InfoLevel

	if c != nil {
		if c.Style != "" {
			style = c.Style
		}
		if c.Level != "" {
			if lvl, parseErr := zapcore.ParseLevel(c.Level); parseErr == nil {
				level = lvl
			}
		}
	}

	switch style {
	case StyleNoop:
		logger = zap.NewNop()
	case StyleJson:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	case StyleTerminal:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	default:
		log.Fatalf("invalid logging style '%s': must be one of: terminal, json, noop", style)
	}

	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	return logger
}
