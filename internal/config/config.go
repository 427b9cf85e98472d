package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config service configuration
type Config struct {
	Logs      Logs      `toml:"logs"`
	Server    Server    `toml:"server"`
	Storage   Storage   `toml:"storage"`
	Database  Database  `toml:"database"`
	Metrics   Metrics   `toml:"metrics"`
	Tracing   Tracing   `toml:"tracing"`
	Auth      Auth      `toml:"auth"`
	Booking   Booking   `toml:"booking"`
	Redis     Redis     `toml:"redis"`
	Kafka     Kafka     `toml:"kafka"`
	RateLimit RateLimit `toml:"rate_limit"`
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type Storage struct {
	Driver      string `toml:"driver"`
	SeedOnStart bool   `toml:"seed_on_start"`
}

type Database struct {
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

// DSN connection string for lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type Tracing struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	SampleRatio float64 `toml:"sample_ratio"`
}

type Auth struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type Booking struct {
	Timezone            string `toml:"timezone"`
	DefaultSlotStepMins int    `toml:"default_slot_step_mins"`
}

// Location loads the business timezone
func (b Booking) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type Redis struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SlotsTTLSeconds int    `toml:"slots_ttl_seconds"`
}

func (r Redis) SlotsTTL() time.Duration {
	return time.Duration(r.SlotsTTLSeconds) * time.Second
}

type Kafka struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	PollIntervalMs int      `toml:"poll_interval_ms"`
	BatchSize      int      `toml:"batch_size"`
}

func (k Kafka) PollInterval() time.Duration {
	return time.Duration(k.PollIntervalMs) * time.Millisecond
}

type RateLimit struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Load reads the TOML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load for an in-memory document
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the defaults
func Default() *Config {
	return &Config{
		Logs: Logs{Level: "info"},
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Storage: Storage{Driver: StorageDriverPostgres},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: Metrics{Path: "/metrics", ServiceName: "appointment-service"},
		Tracing: Tracing{Endpoint: "localhost:4317", SampleRatio: 1},
		Auth:    Auth{TokenTTLHours: 24 * 7},
		Booking: Booking{Timezone: "UTC", DefaultSlotStepMins: 15},
		Redis:   Redis{Addr: "localhost:6379", SlotsTTLSeconds: 60},
		Kafka: Kafka{
			Topic:          "appointments.events",
			PollIntervalMs: 2000,
			BatchSize:      50,
		},
		RateLimit: RateLimit{RequestsPerMinute: 30, Burst: 10},
	}
}

// Validate reports every inconsistent setting at once
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q is not supported", c.Storage.Driver))
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Auth.TokenTTLHours <= 0 {
		problems = append(problems, "auth.token_ttl_hours must be positive")
	}
	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone: %v", err))
	}
	if c.Booking.DefaultSlotStepMins <= 0 {
		problems = append(problems, "booking.default_slot_step_mins must be positive")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port is out of range")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		problems = append(problems, "rate_limit.requests_per_minute must be positive")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, "tracing.sample_ratio must be within [0, 1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
