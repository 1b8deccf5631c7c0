// Package config loads service configuration from config files and
// environment variables via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Lock      LockConfig
	FeedLog   FeedLogConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type HTTPConfig struct {
	Addr string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port for the Redis client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LockConfig selects the coordination capability. When Enabled is false the
// service runs with a no-op locker; feed generations are not serialized
// against other instances.
type LockConfig struct {
	Enabled bool
}

// FeedLogConfig configures the feed run audit log. An empty path disables
// auditing.
type FeedLogConfig struct {
	Path string
}

type LogConfig struct {
	Level string // debug, info, warn, error
}

type TelemetryConfig struct {
	Enabled  bool
	Endpoint string // OTLP gRPC collector, host:port
}

// Load reads configuration from ./config.yaml (optional) and FEED_* env
// vars, with sane defaults for local development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "retino-feed")
	v.SetDefault("app.env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("lock.enabled", false)
	v.SetDefault("feedlog.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}
