package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// InternalToken общий секрет для /internal маршрутов; пустой отключает проверку
	InternalToken string `toml:"internal_token"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кэша расписаний
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// CacheTTL время жизни записи кэша
func (c RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SchedulingConfig параметры расчета слотов и жизненного цикла записей
type SchedulingConfig struct {
	Timezone                string `toml:"timezone"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	JoinNotBeforeMinutes    int    `toml:"join_not_before_minutes"`
	JoinNotAfterMinutes     int    `toml:"join_not_after_minutes"`
	PendingTTLMinutes       int    `toml:"pending_ttl_minutes"`
	ReaperSchedule          string `toml:"reaper_schedule"`
}

// Location загружает системную временную зону
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PendingTTL сколько неоплаченная запись держит слот
func (c SchedulingConfig) PendingTTL() time.Duration {
	return time.Duration(c.PendingTTLMinutes) * time.Minute
}

// RateLimitConfig ограничение частоты запросов к публичным ручкам
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`

	// TrustForwarded брать IP клиента из X-Forwarded-For (только за своим reverse proxy)
	TrustForwarded bool `toml:"trust_forwarded"`
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	cfg := Default()

	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
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
			ServiceName: "agenda_service",
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			CacheTTLSeconds: 300,
		},
		Scheduling: SchedulingConfig{
			Timezone:                domain.DefaultTimezone,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			JoinNotBeforeMinutes:    domain.DefaultJoinNotBeforeMinutes,
			JoinNotAfterMinutes:     domain.DefaultJoinNotAfterMinutes,
			PendingTTLMinutes:       domain.DefaultPendingTTLMinutes,
			ReaperSchedule:          "@every 1m",
		},
		RateLimit: RateLimitConfig{
			RPS:   5,
			Burst: 10,
		},
	}
}

// applyDefaults восстанавливает значения, явно обнуленные в файле
func (c *Config) applyDefaults() {
	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = domain.DefaultTimezone
	}
	if c.Scheduling.ReaperSchedule == "" {
		c.Scheduling.ReaperSchedule = "@every 1m"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone %q: %v", ErrInvalidConfig, c.Scheduling.Timezone, err)
	}
	if c.Scheduling.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: scheduling.min_booking_notice_minutes must be non-negative", ErrInvalidConfig)
	}
	if c.Scheduling.JoinNotBeforeMinutes < 0 || c.Scheduling.JoinNotAfterMinutes < 0 {
		return fmt.Errorf("%w: scheduling join margins must be non-negative", ErrInvalidConfig)
	}
	if c.Scheduling.PendingTTLMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.pending_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
		}
		if c.Redis.CacheTTLSeconds <= 0 {
			return fmt.Errorf("%w: redis.cache_ttl_seconds must be positive", ErrInvalidConfig)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	return nil
}
