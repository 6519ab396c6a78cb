package common

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings loaded once at startup. Components receive it
// explicitly via their constructors instead of reading global state.
type Config struct {
	values map[string]any
}

// LoadConfig reads a YAML file into a Config. Always prefer a config parameter over
// a hard-coded constant.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return &Config{values: values}, nil
}

// GetString returns a string-typed parameter, or an empty string if the key is
// missing or not a string.
func (c *Config) GetString(key string) string {
	value, ok := c.values[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

// GetStringOrDefault is GetString except a missing/mistyped value yields `defaultValue`.
func (c *Config) GetStringOrDefault(key, defaultValue string) string {
	value := c.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetIntOrDefault returns an integer-typed parameter, or `defaultValue` if the key
// is missing or not an integer.
func (c *Config) GetIntOrDefault(key string, defaultValue int) int {
	value, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	intValue, ok := value.(int)
	if !ok {
		return defaultValue
	}
	return intValue
}

// GetFloatOrDefault returns a float-typed parameter, or `defaultValue` if the key
// is missing or not a number. Integer values are widened to floats.
func (c *Config) GetFloatOrDefault(key string, defaultValue float64) float64 {
	value, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return defaultValue
	}
}

// GetDurationOrDefault returns a duration-typed parameter specified as an integer
// number of milliseconds, or `defaultValue` if the key is missing or not an integer.
func (c *Config) GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	intValue := c.GetIntOrDefault(key, -1)
	if intValue < 0 {
		return defaultValue
	}
	return time.Duration(intValue) * time.Millisecond
}
