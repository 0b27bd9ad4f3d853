package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CATALOGDASH_"

type Config struct {
	Source        Source            `yaml:"source"`
	DurationUnits map[string]string `yaml:"duration_units"`
	Server        Server            `yaml:"server"`
	Logging       Logging           `yaml:"logging"`
	Dashboard     Dashboard         `yaml:"dashboard"`
}

type Source struct {
	Path string `yaml:"path"`
}

type Server struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dashboard holds the initial control values that are not fixed by the layout.
type Dashboard struct {
	Country1 string `yaml:"country_1"`
	Country2 string `yaml:"country_2"`
}

// ConfigDir returns the XDG config directory for catalogdash.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "catalogdash")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/catalogdash/config.yaml > ./config.yaml.
// An empty path with a nil error means no file exists and defaults apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", nil
}

// Load reads and parses a config YAML file. An empty path yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Source: Source{Path: "netflix_titles.csv"},
		Server: Server{Host: "127.0.0.1", Port: 8050},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
		Dashboard: Dashboard{
			Country1: "India",
			Country2: "United States",
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.DurationUnits) == 0 {
		cfg.DurationUnits = DefaultDurationUnits()
	}
	return cfg, nil
}

// DefaultDurationUnits maps duration unit tokens to the derived field they fill.
func DefaultDurationUnits() map[string]string {
	return map[string]string{
		"min":     "minutes",
		"mins":    "minutes",
		"minutes": "minutes",
		"season":  "seasons",
		"seasons": "seasons",
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "SOURCE"); ok && v != "" {
		c.Source.Path = v
	}
	if v, ok := lookup(EnvPrefix + "HOST"); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup(EnvPrefix + "PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT %q: %w", EnvPrefix, v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvPrefix + "ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
