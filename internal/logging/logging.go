package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It defaults to a nop logger so library
// code and tests can log without initialization; the CLI replaces it via
// InitLogger before running anything.
var Logger = zap.NewNop().Sugar()

// InitLogger builds the real logger. Verbose runs get development output at
// debug level; normal runs get console output gated at warn so detector and
// adapter warnings surface without drowning CI logs.
func InitLogger(verbose bool) error {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}
