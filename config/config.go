package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go-surface/theme"
)

// Mode selects how the host endpoint is derived
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ControllerType identifies the kind of controller
type ControllerType string

const (
	ControllerLaunchpadX    ControllerType = "launchpad-x"
	ControllerLaunchpadMini ControllerType = "launchpad-mini"
	ControllerLaunchpadPro  ControllerType = "launchpad-pro"
)

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName    string         `mapstructure:"port_name" yaml:"port_name"`
	Type        ControllerType `mapstructure:"type" yaml:"type"`
	AutoConnect bool           `mapstructure:"auto_connect" yaml:"auto_connect"`
}

// MIDIConfig controls the hardware pad mirror
type MIDIConfig struct {
	Mirror      bool               `mapstructure:"mirror" yaml:"mirror"`
	FPS         int                `mapstructure:"fps" yaml:"fps"`
	Controllers []ControllerConfig `mapstructure:"controllers" yaml:"controllers,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Mode    Mode        `mapstructure:"mode" yaml:"mode"`
	Host    string      `mapstructure:"host" yaml:"host,omitempty"`     // page host in production, e.g. studio.local:3000
	Scheme  string      `mapstructure:"scheme" yaml:"scheme,omitempty"` // page scheme in production: http or https
	DevPort int         `mapstructure:"dev_port" yaml:"dev_port"`
	Theme   theme.Theme `mapstructure:"theme" yaml:"theme"`
	Palette string      `mapstructure:"palette" yaml:"palette,omitempty"` // optional GPL file for the value ramp
	MIDI    MIDIConfig  `mapstructure:"midi" yaml:"midi"`
	Debug   bool        `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:    ModeDevelopment,
		Scheme:  "http",
		DevPort: 8080,
		Theme:   theme.Default(),
		MIDI: MIDIConfig{
			Mirror: true,
			FPS:    30,
			Controllers: []ControllerConfig{
				{
					PortName:    "Launchpad X LPX MIDI",
					Type:        ControllerLaunchpadX,
					AutoConnect: true,
				},
			},
		},
	}
}

// defaults flattens DefaultConfig into viper keys
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"mode":            string(d.Mode),
		"host":            d.Host,
		"scheme":          d.Scheme,
		"dev_port":        d.DevPort,
		"theme.bg":        d.Theme.BG,
		"theme.fg":        d.Theme.FG,
		"theme.blur":      d.Theme.Blur,
		"theme.distance":  d.Theme.Distance,
		"theme.intensity": d.Theme.Intensity,
		"theme.space":     d.Theme.Space,
		"theme.roundness": d.Theme.Roundness,
		"palette":         d.Palette,
		"midi.mirror":     d.MIDI.Mirror,
		"midi.fps":        d.MIDI.FPS,
		"midi.controllers": []map[string]any{
			{"port_name": d.MIDI.Controllers[0].PortName, "type": string(d.MIDI.Controllers[0].Type), "auto_connect": true},
		},
		"debug": d.Debug,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-surface"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load resolves the config from defaults, config file, SURFACE_* environment
// variables and the command's flags, in increasing precedence.
// An explicit path must exist; the standard locations may be missing.
func Load(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("surface")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := bindFlags(v, cmd); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	cfg.MIDI.Controllers = nil
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Theme.Symbols = theme.DefaultSymbols()

	if cmd != nil {
		// A host on the command line means a production endpoint
		if f := cmd.Flags().Lookup("host"); f != nil && f.Changed {
			cfg.Mode = ModeProduction
		}
		if dev, err := cmd.Flags().GetBool("dev"); err == nil && dev {
			cfg.Mode = ModeDevelopment
		}
		if noMIDI, err := cmd.Flags().GetBool("no-midi"); err == nil && noMIDI {
			cfg.MIDI.Mirror = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindFlags maps command flags onto config keys
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"host":    "host",
		"debug":   "debug",
		"palette": "palette",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Validate checks the values Load can't type-check
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDevelopment, ModeProduction, c.Mode)
	}
	if c.Mode == ModeProduction && c.Host == "" {
		return fmt.Errorf("production mode needs a host")
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if c.MIDI.FPS <= 0 {
		c.MIDI.FPS = 30
	}
	return nil
}

// LoadTheme returns the configured theme with its palette loaded
func (c *Config) LoadTheme() (theme.Theme, error) {
	th := c.Theme
	if c.Palette != "" {
		p, err := theme.LoadGPL(c.Palette)
		if err != nil {
			return th, err
		}
		th.Palette = p
	}
	return th, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.MIDI.Controllers {
		if c.MIDI.Controllers[i].PortName == portName {
			return &c.MIDI.Controllers[i]
		}
	}
	return nil
}

// AddController adds or updates a controller config
func (c *Config) AddController(ctrl ControllerConfig) {
	for i := range c.MIDI.Controllers {
		if c.MIDI.Controllers[i].PortName == ctrl.PortName {
			c.MIDI.Controllers[i] = ctrl
			return
		}
	}
	c.MIDI.Controllers = append(c.MIDI.Controllers, ctrl)
}

// DetectControllerType guesses the Launchpad model from its port name
func DetectControllerType(portName string) ControllerType {
	name := strings.ToLower(portName)
	switch {
	case strings.Contains(name, "mini"):
		return ControllerLaunchpadMini
	case strings.Contains(name, "pro"):
		return ControllerLaunchpadPro
	}
	return ControllerLaunchpadX
}

// AutoConnectPorts returns the port names with autoConnect enabled
func (c *Config) AutoConnectPorts() []string {
	var result []string
	for _, ctrl := range c.MIDI.Controllers {
		if ctrl.AutoConnect {
			result = append(result, ctrl.PortName)
		}
	}
	return result
}
