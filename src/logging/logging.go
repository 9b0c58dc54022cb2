// Package logging builds the sugared zap logger every component receives.
package logging

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger tagged with a fresh run id. format "json" selects
// the production encoder; anything else the development console encoder.
// An unknown level falls back to info with a warning.
func New(level, format string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, levelErr := zapcore.ParseLevel(level)
	if levelErr != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build(zap.AddStacktrace(zap.FatalLevel))
	if err != nil {
		return nil, err
	}
	sugar := logger.Sugar().With("run", uuid.NewString())
	if levelErr != nil {
		sugar.Warnf("Invalid log level %q, using info", level)
	}
	return sugar, nil
}
