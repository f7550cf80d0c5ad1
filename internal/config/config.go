package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. HUFFCODEC_LOG_LEVEL for log.level.
const EnvPrefix = "HUFFCODEC"

// Config holds all configuration for the application
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Encoder EncoderConfig `mapstructure:"encoder"`
	Output  OutputConfig  `mapstructure:"output"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// EncoderConfig holds code table related configuration
type EncoderConfig struct {
	// DefaultPath is a saved table opened at startup, if set.
	DefaultPath string `mapstructure:"default_path"`
	Workers     int    `mapstructure:"workers"`
	Fill        bool   `mapstructure:"fill"`
}

// OutputConfig holds compressed output related configuration
type OutputConfig struct {
	// Framed selects the self-delimiting frame format for compressed
	// files instead of bare packed bits.
	Framed bool `mapstructure:"framed"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("encoder.default_path", "")
	v.SetDefault("encoder.workers", 1)
	v.SetDefault("encoder.fill", true)

	v.SetDefault("output.framed", true)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Encoder.Workers < 1 {
		return fmt.Errorf("invalid encoder workers: %d", c.Encoder.Workers)
	}
	return nil
}
