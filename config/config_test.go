package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("host", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("palette", "", "")
	cmd.Flags().Bool("dev", false, "")
	cmd.Flags().Bool("no-midi", false, "")
	return cmd
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load(newCmd(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeDevelopment || cfg.DevPort != 8080 {
		t.Errorf("mode=%q port=%d", cfg.Mode, cfg.DevPort)
	}
	if cfg.Theme.BG != "#f6f5f4" || cfg.Theme.FG != "#c64600" || cfg.Theme.Intensity != 0.4 {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Theme.Symbols.PadLit == 0 {
		t.Errorf("symbols must be filled in")
	}
	if !cfg.MIDI.Mirror || cfg.MIDI.FPS != 30 {
		t.Errorf("midi = %+v", cfg.MIDI)
	}
	if ports := cfg.AutoConnectPorts(); len(ports) != 1 || ports[0] != "Launchpad X LPX MIDI" {
		t.Errorf("auto connect ports = %v", ports)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := writeFile(t, dir, "surface.yaml", `
mode: production
host: studio.local:3000
scheme: https
theme:
  fg: "#1a2b3c"
  intensity: 0.2
midi:
  mirror: true
  controllers:
    - port_name: "LPMiniMK3 MIDI"
      type: launchpad-mini
      auto_connect: true
`)
	t.Setenv("SURFACE_THEME_BLUR", "7.5")

	cmd := newCmd()
	if err := cmd.Flags().Parse([]string{"--no-midi", "--debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(cmd, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeProduction || cfg.Host != "studio.local:3000" || cfg.Scheme != "https" {
		t.Errorf("endpoint config = %q %q %q", cfg.Mode, cfg.Host, cfg.Scheme)
	}
	if cfg.Theme.FG != "#1a2b3c" || cfg.Theme.Intensity != 0.2 {
		t.Errorf("theme from file = %+v", cfg.Theme)
	}
	if cfg.Theme.BG != "#f6f5f4" {
		t.Errorf("unset theme keys keep defaults, bg = %q", cfg.Theme.BG)
	}
	if cfg.Theme.Blur != 7.5 {
		t.Errorf("env override blur = %v", cfg.Theme.Blur)
	}
	if cfg.MIDI.Mirror {
		t.Errorf("--no-midi should disable the mirror")
	}
	if !cfg.Debug {
		t.Errorf("--debug should enable debug")
	}
	if c := cfg.FindController("LPMiniMK3 MIDI"); c == nil || c.Type != ControllerLaunchpadMini {
		t.Errorf("controllers = %+v", cfg.MIDI.Controllers)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad mode", "mode: staging\n", "mode must be"},
		{"production without host", "mode: production\n", "needs a host"},
		{"bad color", "theme:\n  bg: white\n", "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.body)
			_, err := Load(newCmd(), path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}

	if _, err := Load(newCmd(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("explicit missing file should fail")
	}
}

func TestDevFlagWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SURFACE_MODE", "production")
	t.Setenv("SURFACE_HOST", "studio.local")
	t.Chdir(t.TempDir())

	cfg, err := Load(newCmd(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeProduction || cfg.Host != "studio.local" {
		t.Fatalf("env mode = %q host = %q", cfg.Mode, cfg.Host)
	}

	cmd := newCmd()
	cmd.Flags().Parse([]string{"--dev"})
	cfg, err = Load(cmd, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeDevelopment {
		t.Errorf("--dev should force development, got %q", cfg.Mode)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme.Intensity = 0.55
	cfg.AddController(ControllerConfig{PortName: "Launchpad Pro MK3", Type: ControllerLaunchpadPro})
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme.Intensity != 0.55 {
		t.Errorf("intensity = %v", loaded.Theme.Intensity)
	}
	if len(loaded.MIDI.Controllers) != 2 {
		t.Errorf("controllers = %+v", loaded.MIDI.Controllers)
	}
}

func TestHostFlagSelectsProduction(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cmd := newCmd()
	cmd.Flags().Parse([]string{"--host", "studio.local:3000"})
	cfg, err := Load(cmd, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeProduction || cfg.Host != "studio.local:3000" {
		t.Errorf("mode = %q host = %q, want production on studio.local:3000", cfg.Mode, cfg.Host)
	}

	cmd = newCmd()
	cmd.Flags().Parse([]string{"--host", "studio.local:3000", "--dev"})
	cfg, err = Load(cmd, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeDevelopment {
		t.Errorf("--dev should still win over --host, got %q", cfg.Mode)
	}
}

func TestDetectControllerType(t *testing.T) {
	tests := map[string]ControllerType{
		"Launchpad X LPX MIDI":    ControllerLaunchpadX,
		"Launchpad Mini MK3 MIDI": ControllerLaunchpadMini,
		"Launchpad Pro MK3 MIDI":  ControllerLaunchpadPro,
		"Some Other Grid":         ControllerLaunchpadX,
	}
	for name, want := range tests {
		if got := DetectControllerType(name); got != want {
			t.Errorf("DetectControllerType(%q) = %q, want %q", name, got, want)
		}
	}
}
