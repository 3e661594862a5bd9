package config

import (
	"fmt"
	"os"

	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/pelletier/go-toml/v2"
)

// Template renders Default as a TOML document with the platform socket
// written out. An empty client_name keeps the generated name.
func Template() ([]byte, error) {
	d := Default()
	out, err := toml.Marshal(fileConfig{
		SocketPath: kicad.DefaultSocketPath(),
		Log: fileLog{
			Level:  d.Log.Level,
			Format: d.Log.Format,
		},
		Watch: fileWatch{
			Interval:    d.Watch.Interval.String(),
			MetricsAddr: "127.0.0.1:9464",
			CorsOrigins: []string{"http://localhost:3000"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render config template: %w", err)
	}
	return out, nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, template, 0o600)
}
