package config

import (
	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/logging"
	"github.com/danmuck/kicadctl/internal/protocol/session"
)

// Connection returns the client settings; empty fields are filled by
// kicad.Connect.
func (c Config) Connection() kicad.ConnectionConfig {
	return kicad.ConnectionConfig{
		SocketPath: c.SocketPath,
		ClientName: c.ClientName,
		Token:      c.Token,
	}
}

// Logging overlays the file log settings on base.
func (c Config) Logging(base logging.Config) logging.Config {
	if lvl, ok := logging.ParseLevel(c.Log.Level); ok {
		base.Level = lvl
	}
	if c.Log.Format != "" {
		base.Format = c.Log.Format
	}
	base.NoColor = base.NoColor || c.Log.NoColor
	return base
}

// Backoff returns the watch reconnect policy.
func (c Config) Backoff() session.BackoffConfig {
	b := session.DefaultBackoffConfig()
	b.MaxAttempts = c.Watch.MaxAttempts
	return b
}
