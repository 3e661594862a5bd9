package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/kicadctl/internal/config"
	"github.com/danmuck/kicadctl/internal/kiapi"
	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/logging"
	"github.com/danmuck/kicadctl/internal/testutil/kicadsim"
	"github.com/danmuck/kicadctl/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

func runCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	logger := testlog.Start(t)
	a := &app{
		getenv: func(key string) string { return env[key] },
		configureLogger: func(string, logging.Config) zerolog.Logger {
			return logger
		},
	}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func demoSim(t *testing.T) *kicadsim.Server {
	t.Helper()
	sim := kicadsim.Start(t, testlog.Start(t))
	sim.ServeBoard("9.0.2", "demo.kicad_pcb",
		kicadsim.Footprint{Reference: "R1", Value: "10k", FootprintName: "R_0603_1608Metric", Layer: kiapi.LayerFCu, X: 10, Y: 20},
		kicadsim.Footprint{Reference: "C1", Value: "100n", Layer: kiapi.LayerBCu, ExcludeBOM: true},
		kicadsim.Footprint{Reference: "U1", Value: "STM32F405RGT6_LQFP64", Layer: kiapi.LayerFCu, Locked: true},
		kicadsim.Footprint{Reference: "H1", FootprintName: "MountingHole_3.2mm_M3", Layer: kiapi.LayerFCu, X: 3, Y: 3},
	)
	return sim
}

func TestVersionCommand(t *testing.T) {
	sim := demoSim(t)
	out, err := runCLI(t, nil, "--socket", sim.Addr(), "--client-name", "kicadctl-test", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "KiCad 9.0.2") || !strings.Contains(out, "client kicadctl-test") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if got := sim.Requests()[0].GetHeader().GetClientName(); got != "kicadctl-test" {
		t.Fatalf("expected client name flag on the wire, got %q", got)
	}
}

func TestSocketFromEnvironment(t *testing.T) {
	sim := demoSim(t)
	out, err := runCLI(t, map[string]string{kicad.EnvSocketPath: sim.Addr()}, "board")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if strings.TrimSpace(out) != "Board: demo.kicad_pcb" {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestFootprintsCommandFiltersLayer(t *testing.T) {
	sim := demoSim(t)
	out, err := runCLI(t, nil, "--socket", sim.Addr(), "footprints", "--layer", "B.Cu")
	if err != nil {
		t.Fatalf("footprints: %v", err)
	}
	if !strings.HasPrefix(out, "1 footprints\n") || !strings.Contains(out, "C1") || strings.Contains(out, "R1 ") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "no-bom") {
		t.Fatalf("expected flags column:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	sim := demoSim(t)
	out, err := runCLI(t, nil, "--socket", sim.Addr(), "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{
		"Board: demo.kicad_pcb",
		"Mounting Holes",
		"Exclude from BOM",
		"Locked",
		"Resistors",
		"H1   M3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if got := rowValue(out, "Total Components"); got != "3" {
		t.Fatalf("expected 3 components, got %q", got)
	}
	if got := rowValue(out, "Mounting Holes"); got != "1" {
		t.Fatalf("expected 1 mounting hole, got %q", got)
	}
	if strings.Contains(out, "Do Not Populate") {
		t.Fatalf("zero DNP row must be hidden:\n%s", out)
	}
}

// rowValue returns the last column of the first line starting with label.
func rowValue(out, label string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, label) {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	return ""
}

func TestCommandSurfacesConnectFailure(t *testing.T) {
	_, err := runCLI(t, nil, "--socket", "inproc://kicadctl-nobody-home", "board")
	if !errors.Is(err, kicad.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestWatchCommandStopsAfterCount(t *testing.T) {
	sim := demoSim(t)
	out, err := runCLI(t, nil, "--socket", sim.Addr(), "watch", "--count", "2", "--interval", "1ms")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("unchanged statistics must print once, got:\n%s", out)
	}
	if !strings.Contains(lines[0], "demo.kicad_pcb: 3 components (front 2, back 1, other 0), 1 mounting holes") {
		t.Fatalf("unexpected watch line %q", lines[0])
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kicadctl.toml")
	out, err := runCLI(t, nil, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := runCLI(t, nil, "config", "init", path); err == nil {
		t.Fatalf("expected init to refuse overwrite")
	}
	if _, err := runCLI(t, nil, "config", "validate", path); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runCLI(t, nil, "config", "validate", path); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kicadctl.toml")
	body := "socket_path = \"ipc:///from/file\"\nclient_name = \"from-file\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := map[string]string{kicad.EnvSocketPath: "ipc:///from/env"}
	getenv := func(k string) string { return env[k] }

	cfg, err := resolveConfig(rootOptions{configPath: path}, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.SocketPath != "ipc:///from/env" || cfg.ClientName != "from-file" {
		t.Fatalf("env must beat file: %+v", cfg)
	}

	cfg, err = resolveConfig(rootOptions{configPath: path, socket: "inproc://flag", logLevel: "debug"}, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.SocketPath != "inproc://flag" || cfg.Log.Level != "debug" {
		t.Fatalf("flags must beat env: %+v", cfg)
	}

	if _, err := resolveConfig(rootOptions{logLevel: "loud"}, getenv); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected invalid flag level to fail, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 12, "short"},
		{"STM32F405RGT6_LQFP64", 12, "STM32F405..."},
		{"Ωμέγα-Ωμέγα-Ωμέγα", 8, "Ωμέγα..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := config.Load("ex.config.toml")
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if cfg.ClientName != "kicadctl-bench" || cfg.Watch.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("unexpected example config %+v", cfg)
	}
	if cfg.Watch.Interval.String() != "5s" {
		t.Fatalf("unexpected interval %v", cfg.Watch.Interval)
	}
}
