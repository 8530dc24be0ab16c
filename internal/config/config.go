package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SOLITAIRE"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

type Config struct {
	HTTPAddr    string         `mapstructure:"http_addr"`
	RawLogLevel string         `mapstructure:"log_level"`
	LogLevel    slog.Level     `mapstructure:"-"`
	Store       StoreConfig    `mapstructure:"store"`
	Redis       RedisConfig    `mapstructure:"redis"`
	NATS        NATSConfig     `mapstructure:"nats"`
	Database    DatabaseConfig `mapstructure:"database"`
	CardArt     CardArtConfig  `mapstructure:"cardart"`
}

type StoreConfig struct {
	Driver        string        `mapstructure:"driver"`
	GameTTL       time.Duration `mapstructure:"game_ttl"`
	EvictInterval time.Duration `mapstructure:"evict_interval"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// NATSConfig configures event publishing. An empty URL disables it.
type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// DatabaseConfig configures the results ledger. An empty DSN disables it.
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type CardArtConfig struct {
	BasePath string `mapstructure:"base_path"`
}

// Load reads defaults, then the optional YAML file named by SOLITAIRE_CONFIG,
// then SOLITAIRE_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	level, err := parseLogLevel(c.RawLogLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.game_ttl", 24*time.Hour)
	v.SetDefault("store.evict_interval", time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject_prefix", "solitaire")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("cardart.base_path", "/static/cards")
}

func (c Config) validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("invalid store.driver %q", c.Store.Driver))
	}
	if c.Store.GameTTL <= 0 {
		errs = append(errs, fmt.Errorf("store.game_ttl must be positive, got %s", c.Store.GameTTL))
	}
	if c.Store.EvictInterval <= 0 {
		errs = append(errs, fmt.Errorf("store.evict_interval must be positive, got %s", c.Store.EvictInterval))
	}
	if c.Store.Driver == DriverRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when store.driver=redis"))
	}
	if c.NATS.URL != "" && c.NATS.SubjectPrefix == "" {
		errs = append(errs, errors.New("nats.subject_prefix is required when nats.url is set"))
	}
	if c.Database.DSN != "" && c.Database.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("database.max_conns must be positive, got %d", c.Database.MaxConns))
	}
	return errors.Join(errs...)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
}
