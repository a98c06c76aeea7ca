package serve

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	loomerrors "github.com/loom-ui/loom/internal/errors"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config configures the server. Zero values fall back to defaults.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address"`

	// AllowedOrigins whitelists websocket origins. Empty means
	// same-origin only; "*" allows any origin (development).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// ReadTimeout bounds websocket reads; an idle client that sends
	// nothing for this long is disconnected.
	ReadTimeout Duration `yaml:"read_timeout"`

	// WriteTimeout bounds each websocket write.
	WriteTimeout Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `yaml:"metrics"`

	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		ReadTimeout:     Duration(60 * time.Second),
		WriteTimeout:    Duration(10 * time.Second),
		ShutdownTimeout: Duration(10 * time.Second),
		Metrics:         true,
	}
}

// LoadConfig reads a YAML config file, layered over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, loomerrors.New("E300").WithDetail(err.Error()).Wrap(err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the server cannot run
// with.
func (c *Config) Validate() error {
	if c.Address == "" {
		return loomerrors.New("E300").WithDetail("address must not be empty")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.ShutdownTimeout < 0 {
		return loomerrors.New("E300").WithDetail("timeouts must not be negative")
	}
	return nil
}

// withDefaults fills unset fields in place.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	return c
}
