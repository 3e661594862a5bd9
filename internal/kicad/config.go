package kicad

import (
	"os"
	"runtime"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	// EnvSocketPath overrides the API socket address at the CLI layer.
	EnvSocketPath = "KICAD_API_SOCKET"

	clientNamePrefix = "kicadctl-"
	unixSocketPath   = "ipc:///tmp/kicad/api.sock"
)

// ConnectionConfig identifies the KiCad endpoint and this client.
type ConnectionConfig struct {
	SocketPath string
	ClientName string
	// Token is normally empty; KiCad issues one on the first successful reply.
	Token string
}

// DefaultConnectionConfig returns the platform socket path and a fresh
// random client name.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		SocketPath: DefaultSocketPath(),
		ClientName: NewClientName(),
	}
}

// DefaultSocketPath is the address KiCad listens on for this platform.
func DefaultSocketPath() string {
	return defaultSocketPath(runtime.GOOS, os.TempDir())
}

func defaultSocketPath(goos, tempDir string) string {
	if goos == "windows" {
		return "ipc://" + tempDir + `\kicad\api.sock`
	}
	return unixSocketPath
}

// NewClientName returns kicadctl- followed by 8 random lowercase
// alphanumerics.
func NewClientName() string {
	id := strings.ToLower(ulid.Make().String())
	return clientNamePrefix + id[len(id)-8:]
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath()
	}
	if c.ClientName == "" {
		c.ClientName = NewClientName()
	}
	return c
}
