package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML structure. Durations are written as
// Go duration strings ("2s", "150ms").
type fileConfig struct {
	DefaultWait     string   `yaml:"default_wait"`
	DefaultSelector string   `yaml:"default_selector"`
	PollInterval    string   `yaml:"poll_interval"`
	Selectors       []string `yaml:"selectors"`
}

// Load reads a YAML configuration file and returns a Config. Omitted
// fields keep the package defaults; extra selector kinds listed under
// "selectors" are registered on top of the built-ins.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c := New()

	if fc.DefaultWait != "" {
		d, err := parseDuration("default_wait", fc.DefaultWait)
		if err != nil {
			return nil, err
		}
		c.Wait = d
	}

	if fc.PollInterval != "" {
		d, err := parseDuration("poll_interval", fc.PollInterval)
		if err != nil {
			return nil, err
		}
		if d < MinPollInterval {
			d = MinPollInterval
		}
		c.PollInterval = d
	}

	if fc.DefaultSelector != "" {
		c.Kind = fc.DefaultSelector
	}

	for _, kind := range fc.Selectors {
		if c.IsKind(kind) {
			continue
		}
		if err := c.RegisterKind(kind); err != nil {
			return nil, err
		}
	}

	if !c.IsKind(c.Kind) {
		return nil, fmt.Errorf(
			"default_selector %q is not a registered selector kind", c.Kind,
		)
	}

	return c, nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, raw)
	}
	return d, nil
}
