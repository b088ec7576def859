// Package config loads service configuration from defaults, an optional
// config file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "CATALOG"
	configFileEnvName = "CATALOG_CONFIG_FILE"
)

type SpannerConfig struct {
	Database string `mapstructure:"database"`
}

type HTTPConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type GRPCConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// RelayConfig controls the outbox relay that publishes catalog events.
type RelayConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	BatchSize  int           `mapstructure:"batch_size"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// SearchConfig bounds the page size accepted by the search endpoint.
type SearchConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

type Config struct {
	Spanner SpannerConfig `mapstructure:"spanner"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	Log     LogConfig     `mapstructure:"log"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Relay   RelayConfig   `mapstructure:"relay"`
	Search  SearchConfig  `mapstructure:"search"`
}

// Load reads the configuration. args are the command line arguments
// without the program name; only --config is recognised.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	path := flags.String("config", "", "config file (yaml, json or toml)")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Variables used by the existing deployment scripts.
	_ = v.BindEnv("spanner.database", envPrefix+"_SPANNER_DATABASE", "SPANNER_DATABASE")
	_ = v.BindEnv("http.port", envPrefix+"_HTTP_PORT", "HTTP_PORT")
	_ = v.BindEnv("grpc.port", envPrefix+"_GRPC_PORT", "GRPC_PORT")

	file := *path
	if env, ok := os.LookupEnv(configFileEnvName); ok && file == "" {
		file = env
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Default for local development with emulator
	v.SetDefault("spanner.database", "projects/test-project/instances/dev-instance/databases/catalog-db")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("grpc.port", "9090")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "catalog.events")

	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.interval", 2*time.Second)
	v.SetDefault("relay.batch_size", 50)
	v.SetDefault("relay.max_retries", 5)

	v.SetDefault("search.default_page_size", 10)
	v.SetDefault("search.max_page_size", 100)
}

// Validate checks values that have no usable fallback.
func (c Config) Validate() error {
	var errs []error
	if c.Spanner.Database == "" {
		errs = append(errs, errors.New("spanner.database is required"))
	}
	if c.Search.DefaultPageSize < 1 || c.Search.MaxPageSize < 1 {
		errs = append(errs, errors.New("search page sizes must be positive"))
	} else if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		errs = append(errs, errors.New("search.default_page_size exceeds search.max_page_size"))
	}
	if c.Relay.Enabled {
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			errs = append(errs, errors.New("relay requires kafka.brokers and kafka.topic"))
		}
		if c.Relay.Interval <= 0 || c.Relay.BatchSize <= 0 {
			errs = append(errs, errors.New("relay.interval and relay.batch_size must be positive"))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
