// Package config загружает конфигурацию сервиса из TOML файла.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Booking  BookingConfig  `toml:"booking"`
	Draft    DraftConfig    `toml:"draft"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Logs     LogsConfig     `toml:"logs"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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

// DSN собирает строку подключения для lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BookingConfig бизнес-правила бронирования
type BookingConfig struct {
	MinLeadDays      int `toml:"min_lead_days"`      // За сколько дней до даты закрывается бронирование
	CancelCutoffHour int `toml:"cancel_cutoff_hour"` // Час дня накануне, после которого отмена запрещена
}

// DraftConfig настройки черновиков бронирований в Redis
type DraftConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// KafkaConfig настройки публикации событий
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load читает конфигурацию из файла и заполняет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
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
		Booking: BookingConfig{
			MinLeadDays:      domain.DefaultMinLeadDays,
			CancelCutoffHour: domain.DefaultCancelCutoffHour,
		},
		Draft: DraftConfig{
			Addr:       "localhost:6379",
			TTLMinutes: domain.DefaultDraftTTLMinutes,
		},
		Kafka: KafkaConfig{
			Topic: "reservation-events",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "dh-reservation-service",
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
	}
}

func (c *Config) validate() error {
	if c.Booking.MinLeadDays < domain.MinLeadDaysLowerBound || c.Booking.MinLeadDays > domain.MinLeadDaysUpperBound {
		return fmt.Errorf("config: booking.min_lead_days must be between %d and %d",
			domain.MinLeadDaysLowerBound, domain.MinLeadDaysUpperBound)
	}
	if c.Booking.CancelCutoffHour < 0 || c.Booking.CancelCutoffHour > 23 {
		return fmt.Errorf("config: booking.cancel_cutoff_hour must be between 0 and 23")
	}
	if c.Draft.TTLMinutes <= 0 || c.Draft.TTLMinutes > domain.MaxDraftTTLMinutes {
		return fmt.Errorf("config: draft.ttl_minutes must be between 1 and %d", domain.MaxDraftTTLMinutes)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must not be empty when kafka is enabled")
	}
	return nil
}
