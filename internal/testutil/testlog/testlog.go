package testlog

import (
	"testing"

	"github.com/danmuck/kicadctl/internal/logging"
	"github.com/rs/zerolog"
)

// Start returns a debug logger bound to t's output.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	cfg := logging.DefaultConfig(logging.ProfileTest)
	logging.ApplyEnv(&cfg)
	cfg.NoColor = true
	logger := logging.New(cfg, zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
	logger.Info().Msgf("test=%s", t.Name())
	return logger
}
