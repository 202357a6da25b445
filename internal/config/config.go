// Package config loads the settings of the axon command from defaults, an
// optional axon.yaml and AXON_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/toyz/axonbind/pkg/axon/logging"
)

// Frameworks the serve command can run on
const (
	FrameworkGin   = "gin"
	FrameworkEcho  = "echo"
	FrameworkFiber = "fiber"
)

// Log formats
const (
	LogFormatDiagnostic = "diagnostic"
	LogFormatZap        = "zap"
)

// Config holds the command configuration
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host            string
	Port            int
	Framework       string
	ShutdownTimeout time.Duration
}

// Addr returns the host:port listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig selects the logger
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration. When configFile is empty, axon.yaml is looked up
// in the working directory and ./config and is optional.
func Load(configFile string) (*Config, error) {
	return LoadWith(viper.New(), configFile)
}

// LoadWith reads configuration into v, which may already carry bound flags
func LoadWith(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("AXON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("axon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.Framework = strings.ToLower(v.GetString("server.framework"))
	cfg.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")

	// Logging
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))

	// Metrics
	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Path = v.GetString("metrics.path")

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.framework", FrameworkGin)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatDiagnostic)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Server.Framework {
	case FrameworkGin, FrameworkEcho, FrameworkFiber:
	default:
		errs = append(errs, fmt.Errorf("server.framework must be one of gin, echo, fiber; got '%s'", cfg.Server.Framework))
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", cfg.Server.Port))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch cfg.Log.Format {
	case LogFormatDiagnostic, LogFormatZap:
	default:
		errs = append(errs, fmt.Errorf("log.format must be diagnostic or zap; got '%s'", cfg.Log.Format))
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path '%s' must start with '/'", cfg.Metrics.Path))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
