package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bakerydash/internal/commons"
)

const (
	SourceMySQL = "mysql"
	SourceAPI   = "api"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Source   SourceConfig
	Upstream UpstreamConfig
	Export   ExportConfig
	Order    OrderConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string
}

// SourceConfig selects where orders, products and announcements are read from.
type SourceConfig struct {
	Kind string
}

type UpstreamConfig struct {
	BaseURL  string
	Token    string
	Email    string
	Password string
	Timeout  time.Duration
}

type ExportConfig struct {
	Timezone string
}

type OrderConfig struct {
	MaxRetryAttempts int
}

// Load reads configuration from defaults, an optional YAML file, a .env file
// and the environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "bakerydash")
	v.SetDefault("db.password", "secret")
	v.SetDefault("db.name", "bakerydash")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("source.kind", SourceMySQL)
	v.SetDefault("upstream.base_url", "http://localhost:3000/api")
	v.SetDefault("upstream.token", "")
	v.SetDefault("upstream.email", "")
	v.SetDefault("upstream.password", "")
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("export.timezone", "Europe/Paris")
	v.SetDefault("order.max_retry_attempts", 3)

	if path != "" {
		values, err := commons.ReadYAMLFile(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(values); err != nil {
			return nil, fmt.Errorf("merging config file: %w", err)
		}
	}

	cfg, err := build(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(v *viper.Viper) (*Config, error) {
	durations := map[string]time.Duration{}
	for _, key := range []string{"server.read_timeout", "server.write_timeout", "db.conn_max_lifetime", "upstream.timeout"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  durations["server.read_timeout"],
			WriteTimeout: durations["server.write_timeout"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: durations["db.conn_max_lifetime"],
		},
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Encoding: v.GetString("log.encoding"),
		},
		Source: SourceConfig{
			Kind: strings.ToLower(v.GetString("source.kind")),
		},
		Upstream: UpstreamConfig{
			BaseURL:  strings.TrimRight(v.GetString("upstream.base_url"), "/"),
			Token:    v.GetString("upstream.token"),
			Email:    v.GetString("upstream.email"),
			Password: v.GetString("upstream.password"),
			Timeout:  durations["upstream.timeout"],
		},
		Export: ExportConfig{
			Timezone: v.GetString("export.timezone"),
		},
		Order: OrderConfig{
			MaxRetryAttempts: v.GetInt("order.max_retry_attempts"),
		},
	}, nil
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceMySQL, SourceAPI:
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Order.MaxRetryAttempts < 1 {
		return fmt.Errorf("order max retry attempts must be at least 1, got %d", c.Order.MaxRetryAttempts)
	}
	if c.Source.Kind == SourceAPI && c.Upstream.BaseURL == "" {
		return errors.New("upstream base url is required for the api source")
	}
	return nil
}

// Location resolves the export timezone, falling back to UTC.
func (c ExportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
