package config

// Configuration loading and validation for DDC/CI hosts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-ddcci/ddc"
	"github.com/moffa90/go-ddcci/i2cdev"
	"github.com/moffa90/go-ddcci/logging"
	"github.com/moffa90/go-ddcci/metrics"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Duration is a time.Duration written as a string ("50ms", "1.5s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for YAML and TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// BusConfig selects the I2C adapter.
type BusConfig struct {
	Device string `yaml:"device" toml:"device"` // e.g. /dev/i2c-4
	Force  bool   `yaml:"force_address" toml:"force_address"`
}

// DelayConfig overrides protocol timing.
type DelayConfig struct {
	Response   Duration `yaml:"response" toml:"response"`
	Get        Duration `yaml:"get" toml:"get"`
	Set        Duration `yaml:"set" toml:"set"`
	TableChunk Duration `yaml:"table_chunk" toml:"table_chunk"`
	Save       Duration `yaml:"save" toml:"save"`
	Failed     Duration `yaml:"failed" toml:"failed"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level   string `yaml:"level" toml:"level"`   // trace, debug, info, warn, error, off
	Format  string `yaml:"format" toml:"format"` // "console" or "json"
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	// Enabled attaches a metrics.Metrics observer to the host
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Config is the complete host configuration.
type Config struct {
	Bus     BusConfig     `yaml:"bus" toml:"bus"`
	Delays  DelayConfig   `yaml:"delays" toml:"delays"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := ddc.DefaultDelays()
	return &Config{
		Bus: BusConfig{Device: i2cdev.Path(0)},
		Delays: DelayConfig{
			Response:   Duration(d.Response),
			Get:        Duration(d.Get),
			Set:        Duration(d.Set),
			TableChunk: Duration(d.TableChunk),
			Save:       Duration(d.Save),
			Failed:     Duration(d.Failed),
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file. Fields missing from
// the file keep their Default values.
func Load(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format over the defaults and validates
// the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bus.Device) == "" {
		return fmt.Errorf("bus.device is required")
	}

	delays := map[string]Duration{
		"response":    c.Delays.Response,
		"get":         c.Delays.Get,
		"set":         c.Delays.Set,
		"table_chunk": c.Delays.TableChunk,
		"save":        c.Delays.Save,
		"failed":      c.Delays.Failed,
	}
	for name, d := range delays {
		if d < 0 {
			return fmt.Errorf("delays.%s must not be negative, got %s", name, time.Duration(d))
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	return nil
}

// DelaySettings returns the configured protocol timing.
func (c *Config) DelaySettings() ddc.Delays {
	return ddc.Delays{
		Response:   time.Duration(c.Delays.Response),
		Get:        time.Duration(c.Delays.Get),
		Set:        time.Duration(c.Delays.Set),
		TableChunk: time.Duration(c.Delays.TableChunk),
		Save:       time.Duration(c.Delays.Save),
		Failed:     time.Duration(c.Delays.Failed),
	}
}

// Observer returns a metrics observer registered with reg when metrics are
// enabled, and nil otherwise.
func (c *Config) Observer(reg prometheus.Registerer) ddc.Observer {
	if !c.Metrics.Enabled {
		return nil
	}
	return metrics.New(reg)
}

// Options returns the host options described by the configuration. When
// metrics are enabled the collectors are registered with reg.
func (c *Config) Options(reg prometheus.Registerer) []ddc.Option {
	opts := []ddc.Option{ddc.WithDelays(c.DelaySettings())}
	if observer := c.Observer(reg); observer != nil {
		opts = append(opts, ddc.WithObserver(observer))
	}
	return opts
}

// BusOptions returns the i2cdev options described by the configuration.
func (c *Config) BusOptions() []i2cdev.Option {
	return []i2cdev.Option{i2cdev.WithForce(c.Bus.Force)}
}

// Logging returns the logger configuration for app.
func (c *Config) Logging(app string) logging.Config {
	return logging.Config{
		App:     app,
		Level:   c.Log.Level,
		JSON:    c.Log.Format == "json",
		NoColor: c.Log.NoColor,
	}
}
