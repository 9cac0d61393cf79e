// Package config loads the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/density"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/protocol"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textdiff"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "AYNZO_CONFIG"

// Built-in defaults, used when neither a flag nor the file sets a value.
const (
	DefaultNetwork         = "unix"
	DefaultMaxMessageBytes = protocol.DefaultMaxMessageBytes
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultDensityTop      = density.AnalyzerTop
	DefaultDiffMaxCells    = textdiff.DefaultMaxCells
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Tools  ToolsConfig  `toml:"tools"`
}

// ServerConfig maps socket settings.
type ServerConfig struct {
	Network         *string   `toml:"network"`
	Address         *string   `toml:"address"`
	MaxMessageBytes *int      `toml:"max_message_bytes"`
	ReadTimeout     *Duration `toml:"read_timeout"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// ToolsConfig maps tool defaults.
type ToolsConfig struct {
	DensityTop   *int `toml:"density_top"`
	DiffMaxCells *int `toml:"diff_max_cells"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGRuntimeDir returns the XDG runtime dir or the temp dir.
func XDGRuntimeDir() string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return v
	}
	return os.TempDir()
}

// DefaultConfigPath returns the config path, honouring AYNZO_CONFIG.
func DefaultConfigPath() string {
	if v := os.Getenv(EnvPath); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), "aynzo", "config.toml")
}

// DefaultSocketPath returns the default unix socket path.
func DefaultSocketPath() string {
	return filepath.Join(XDGRuntimeDir(), "aynzo.sock")
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (c FileConfig) validate() error {
	if n := c.Server.Network; n != nil && *n != "unix" && *n != "tcp" {
		return fmt.Errorf("server.network must be unix or tcp, got %q", *n)
	}
	positive := map[string]*int{
		"server.max_message_bytes": c.Server.MaxMessageBytes,
		"tools.density_top":        c.Tools.DensityTop,
		"tools.diff_max_cells":     c.Tools.DiffMaxCells,
	}
	for key, v := range positive {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, *v)
		}
	}
	if d := c.Server.ReadTimeout; d != nil && d.Duration < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	return nil
}

// DefaultTemplate is written by "aynzo config" when no file exists.
func DefaultTemplate() string {
	return `# aynzo configuration

[server]
# network = "unix"        # unix or tcp
# address = ""            # socket path or host:port; empty uses $XDG_RUNTIME_DIR/aynzo.sock
# max_message_bytes = 8388608
# read_timeout = "5m"

[log]
# level = "info"          # debug, info, warn, error
# format = "json"         # json or text

[tools]
# density_top = 20
# diff_max_cells = 4000000
`
}
