// Package config loads server and cipher settings from a yaml file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"playfair-backend/models"
)

const envVarPrefix = "PLAYFAIR"

// Config contains every option the server and the CLI understand.
type Config struct {
	Server struct {
		// Port the HTTP API listens on.
		Port int `mapstructure:"port"`
		// How long in-flight requests get to finish on shutdown.
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		// Origins allowed by the CORS middleware.
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"server"`

	Log struct {
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		Level string `mapstructure:"level"`
		// Full path to file to which logs will be written. Blank will write to stdout.
		FilePath string `mapstructure:"file_path"`
		// text or json
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Cipher models.CipherConfig `mapstructure:"cipher"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.format", "text")
	v.SetDefault("cipher.padding", "compat")
	v.SetDefault("cipher.max_message_length", 4096)

	// Hosting platforms hand out a bare PORT; the prefixed variable and the
	// config file still win over it.
	if port := os.Getenv("PORT"); port != "" {
		v.SetDefault("server.port", port)
	}
}

// Load reads config.yaml from configPath when present and layers
// PLAYFAIR_* environment variables on top. A missing file is not an error.
// An empty configPath skips the file lookup, a path ending in .yaml or .yml
// is read as that exact file.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	switch {
	case configPath == "":
	case strings.HasSuffix(configPath, ".yaml") || strings.HasSuffix(configPath, ".yml"):
		v.SetConfigFile(configPath)
	default:
		v.AddConfigPath(configPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
