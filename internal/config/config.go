package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "deadlockdev.yaml"

const (
	DefaultPort    = 8080
	DefaultWebRoot = "src/main/webapp"

	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
)

// Environment variables consulted after the config file
const (
	EnvPort    = "DEADLOCKDEV_PORT"
	EnvWebRoot = "DEADLOCKDEV_WEB_ROOT"
	EnvWatch   = "DEADLOCKDEV_WATCH"
)

type Config struct {
	Port         int           `yaml:"port"`
	WebRoot      string        `yaml:"web_root"`
	Watch        bool          `yaml:"watch"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

const defaultConfigContent = `# deadlockdev configuration file
# Place this file in your project root as deadlockdev.yaml

# Port the development server listens on (all interfaces)
port: 8080

# Directory static files are served from
web_root: src/main/webapp

# Log changes to files under web_root
watch: false

# Connection timeouts
read_timeout: 15s
write_timeout: 15s
idle_timeout: 60s
`

// Default returns a config populated with the built-in defaults
func Default() *Config {
	return &Config{
		Port:         DefaultPort,
		WebRoot:      DefaultWebRoot,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}

// Init creates a new config file with default settings
func Init(path string) error {
	return os.WriteFile(path, []byte(defaultConfigContent), 0644)
}

// Exists reports whether a config file is already present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config file at path and overlays environment variables.
// A missing file falls back to defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if required {
			return nil, fmt.Errorf("%s not found. Run 'deadlockdev init' to create one", path)
		}
	default:
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v, ok := lookup(EnvWebRoot); ok && v != "" {
		c.WebRoot = v
	}
	if v, ok := lookup(EnvWatch); ok && v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWatch, v, err)
		}
		c.Watch = watch
	}
	return nil
}

// ApplyFlags overrides fields with flags the user set explicitly
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	if fs.Changed("port") {
		port, err := fs.GetInt("port")
		if err != nil {
			return err
		}
		c.Port = port
	}
	if fs.Changed("web-root") {
		root, err := fs.GetString("web-root")
		if err != nil {
			return err
		}
		c.WebRoot = root
	}
	if fs.Changed("watch") {
		watch, err := fs.GetBool("watch")
		if err != nil {
			return err
		}
		c.Watch = watch
	}
	return nil
}

// fillDefaults restores defaults for fields a config file zeroed out
func (c *Config) fillDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.WebRoot == "" {
		c.WebRoot = DefaultWebRoot
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
}

// Validate checks the port range and resolves WebRoot to an existing
// absolute directory.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", c.Port)
	}

	absRoot, err := filepath.Abs(c.WebRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve web root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("web root does not exist: %s", absRoot)
		}
		return fmt.Errorf("failed to stat web root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("web root is not a directory: %s", absRoot)
	}

	c.WebRoot = absRoot
	return nil
}

// Addr returns the listen address on all interfaces
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
