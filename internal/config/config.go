package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/kicadctl/internal/logging"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the kicadctl file configuration after defaults are applied.
type Config struct {
	SocketPath string
	ClientName string
	Token      string
	Log        LogConfig
	Watch      WatchConfig
}

type LogConfig struct {
	Level   string
	Format  string
	NoColor bool
}

type WatchConfig struct {
	Interval    time.Duration
	MetricsAddr string
	CorsOrigins []string
	// MaxAttempts bounds consecutive reconnect failures; 0 retries forever.
	MaxAttempts int
}

// fileConfig mirrors the on-disk layout. Durations stay strings until Load
// parses them.
type fileConfig struct {
	SocketPath string    `toml:"socket_path"`
	ClientName string    `toml:"client_name"`
	Token      string    `toml:"token"`
	Log        fileLog   `toml:"log"`
	Watch      fileWatch `toml:"watch"`
}

type fileLog struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

type fileWatch struct {
	Interval    string   `toml:"interval"`
	MetricsAddr string   `toml:"metrics_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	MaxAttempts int      `toml:"max_attempts"`
}

// Default leaves SocketPath and ClientName empty so the platform socket and
// a generated name are used.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Watch: WatchConfig{
			Interval: 2 * time.Second,
		},
	}
}

// Load reads path and applies only the keys it defines over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("socket_path") {
		cfg.SocketPath = strings.TrimSpace(raw.SocketPath)
	}
	if meta.IsDefined("client_name") {
		cfg.ClientName = strings.TrimSpace(raw.ClientName)
	}
	if meta.IsDefined("token") {
		cfg.Token = strings.TrimSpace(raw.Token)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(raw.Log.Format))
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("watch", "interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Watch.Interval))
		if err != nil {
			return Config{}, fmt.Errorf("parse watch.interval: %w", err)
		}
		cfg.Watch.Interval = d
	}
	if meta.IsDefined("watch", "metrics_addr") {
		cfg.Watch.MetricsAddr = strings.TrimSpace(raw.Watch.MetricsAddr)
	}
	if meta.IsDefined("watch", "cors_origins") {
		cfg.Watch.CorsOrigins = normalizeOrigins(raw.Watch.CorsOrigins)
	}
	if meta.IsDefined("watch", "max_attempts") {
		cfg.Watch.MaxAttempts = raw.Watch.MaxAttempts
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimRight(strings.TrimSpace(origin), "/")
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func Validate(cfg Config) error {
	if cfg.SocketPath != "" &&
		!strings.HasPrefix(cfg.SocketPath, "ipc://") &&
		!strings.HasPrefix(cfg.SocketPath, "inproc://") {
		return fmt.Errorf("%w: socket_path %q must use ipc:// or inproc://", ErrInvalid, cfg.SocketPath)
	}
	if strings.ContainsAny(cfg.ClientName, " \t\n") {
		return fmt.Errorf("%w: client_name %q contains whitespace", ErrInvalid, cfg.ClientName)
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q must be console or json", ErrInvalid, cfg.Log.Format)
	}
	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("%w: watch.interval must be positive", ErrInvalid)
	}
	for _, origin := range cfg.Watch.CorsOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("%w: watch.cors_origins entry %q must be an http(s) origin", ErrInvalid, origin)
		}
	}
	if cfg.Watch.MaxAttempts < 0 {
		return fmt.Errorf("%w: watch.max_attempts must not be negative", ErrInvalid)
	}
	return nil
}
