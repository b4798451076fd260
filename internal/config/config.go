package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Redis               RedisConfig               `toml:"redis"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Business            BusinessConfig            `toml:"business"`
	RateLimit           RateLimitConfig           `toml:"rate_limit"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// AdminUserIDs пользователи с доступом к расписанию, купонам и чужим бронированиям
	AdminUserIDs []int64 `toml:"admin_user_ids"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig кэш купонов; пустой address отключает кэш
type RedisConfig struct {
	Address          string `toml:"address"`
	Password         string `toml:"password"`
	DB               int    `toml:"db"`
	PoolSize         int    `toml:"pool_size"`
	CouponTTLSeconds int    `toml:"coupon_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

func (r RedisConfig) CouponTTL() time.Duration {
	return time.Duration(r.CouponTTLSeconds) * time.Second
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig глобальные настройки расписания салона
// Используются, если в БД нет более специфичной конфигурации
type BusinessConfig struct {
	Timezone                string `toml:"timezone"`
	OpenTime                string `toml:"open_time"`
	CloseTime               string `toml:"close_time"`
	SlotGranularityMinutes  int    `toml:"slot_granularity_minutes"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
}

// Location часовой пояс салона
func (b BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type RateLimitConfig struct {
	Enabled         bool    `toml:"enabled"`
	RPS             float64 `toml:"rps"`
	Burst           int     `toml:"burst"`
	IdleTimeout     int     `toml:"idle_timeout"`     // секунды без запросов, после которых клиент забывается
	CleanupInterval int     `toml:"cleanup_interval"` // секунды
}

type NotificationServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
// Перед разбором подставляет переменные окружения вида ${VAR} (с учетом .env, если он есть)
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.CouponTTLSeconds == 0 {
		c.Redis.CouponTTLSeconds = 60
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-service"
	}

	if c.Business.Timezone == "" {
		c.Business.Timezone = "UTC"
	}
	if c.Business.OpenTime == "" {
		c.Business.OpenTime = "09:00"
	}
	if c.Business.CloseTime == "" {
		c.Business.CloseTime = "18:00"
	}
	if c.Business.SlotGranularityMinutes == 0 {
		c.Business.SlotGranularityMinutes = 30
	}
	if c.Business.AdvanceBookingDays == 0 {
		c.Business.AdvanceBookingDays = 30
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.IdleTimeout == 0 {
		c.RateLimit.IdleTimeout = 180
	}
	if c.RateLimit.CleanupInterval == 0 {
		c.RateLimit.CleanupInterval = 60
	}

	if c.NotificationService.Timeout == 0 {
		c.NotificationService.Timeout = 5
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}

	if _, err := c.Business.Location(); err != nil {
		return fmt.Errorf("business.timezone: %w", err)
	}
	open, err := types.NewTimeStringFromString(c.Business.OpenTime)
	if err != nil {
		return fmt.Errorf("business.open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Business.CloseTime)
	if err != nil {
		return fmt.Errorf("business.close_time: %w", err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("business.open_time %s must be before close_time %s", open, closeTime)
	}
	if c.Business.SlotGranularityMinutes <= 0 {
		return errors.New("business.slot_granularity_minutes must be positive")
	}
	if c.Business.MinBookingNoticeMinutes < 0 {
		return errors.New("business.min_booking_notice_minutes must not be negative")
	}
	if c.Business.AdvanceBookingDays < 0 {
		return errors.New("business.advance_booking_days must not be negative")
	}

	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return errors.New("rate_limit.rps must be positive")
	}
	if c.NotificationService.Enabled && c.NotificationService.URL == "" {
		return errors.New("notification_service.url is required when enabled")
	}

	return nil
}
