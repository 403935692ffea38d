package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "CARRENTAL"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrReadFile   = errors.New("config: failed to read file")
	ErrReadEnv    = errors.New("config: failed to read environment")
	ErrValidation = errors.New("config: validation failed")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" envconfig:"SERVER"`
	Database DatabaseConfig `toml:"database" envconfig:"DATABASE"`
	Logs     LogsConfig     `toml:"logs" envconfig:"LOGS"`
	Metrics  MetricsConfig  `toml:"metrics" envconfig:"METRICS"`
	Auth     AuthConfig     `toml:"auth" envconfig:"AUTH"`
	Redis    RedisConfig    `toml:"redis" envconfig:"REDIS"`
	Events   EventsConfig   `toml:"events" envconfig:"EVENTS"`
}

// ServerConfig параметры HTTP сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig параметры хранилища.
// Драйвер memory хранит данные в памяти процесса и используется для локального запуска.
type DatabaseConfig struct {
	Driver          string `toml:"driver" envconfig:"DRIVER"`
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// AuthConfig параметры проверки токенов доступа
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	Issuer    string `toml:"issuer" envconfig:"ISSUER"`
}

// RedisConfig параметры кэша автомобилей
type RedisConfig struct {
	Enabled bool   `toml:"enabled" envconfig:"ENABLED"`
	URL     string `toml:"url" envconfig:"URL"`
	CarTTL  int    `toml:"car_ttl" envconfig:"CAR_TTL"` // секунды
}

// EventsConfig параметры публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	URL      string `toml:"url" envconfig:"URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

// Load загружает конфигурацию: значения по умолчанию, затем файл,
// затем .env и переменные окружения с префиксом CARRENTAL_
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
		}
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadEnv, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrValidation, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrValidation)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrValidation, c.Database.Driver)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrValidation)
	}

	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("%w: redis.url is required when redis is enabled", ErrValidation)
	}

	if c.Events.Enabled && (c.Events.URL == "" || c.Events.Exchange == "") {
		return fmt.Errorf("%w: events.url and events.exchange are required when events are enabled", ErrValidation)
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "car_rental",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "car_rental",
		},
		Auth: AuthConfig{
			Issuer: "car-rental",
		},
		Redis: RedisConfig{
			CarTTL: 300,
		},
		Events: EventsConfig{
			Exchange: "car_rental.bookings",
		},
	}
}
