package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const envPrefix = "VENUE"

// Переменные окружения, перекрывающие значения из файла
const (
	EnvDatabaseHost     = "VENUE_DB_HOST"
	EnvDatabasePort     = "VENUE_DB_PORT"
	EnvDatabasePassword = "VENUE_DB_PASSWORD"
	EnvCatalogURL       = "VENUE_CATALOG_URL"
	EnvLogLevel         = "VENUE_LOG_LEVEL"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig настройки клиента каталога пакетов и аттракционов
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig сетка слотов по умолчанию, если для пакета нет своей
type BookingConfig struct {
	GridStart           string `toml:"grid_start"`
	GridEnd             string `toml:"grid_end"`
	IntervalMinutes     int    `toml:"interval_minutes"`
	ServiceDuration     int    `toml:"service_duration"`
	ServiceDurationUnit string `toml:"service_duration_unit"`

	// Сотрудники площадки: меняют статусы слотов, сетку и правила цен
	StaffUserIDs []int64 `toml:"staff_user_ids"`
}

// DefaultGrid сетка по умолчанию для пакета
func (b BookingConfig) DefaultGrid(packageID int64) *domain.SlotGridConfig {
	return &domain.SlotGridConfig{
		PackageID:           packageID,
		GridStart:           types.TimeString(b.GridStart),
		GridEnd:             types.TimeString(b.GridEnd),
		IntervalMinutes:     b.IntervalMinutes,
		ServiceDuration:     b.ServiceDuration,
		ServiceDurationUnit: domain.DurationUnit(b.ServiceDurationUnit),
	}
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию
// и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
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
			ServiceName: "venue_booking_service",
		},
		CatalogService: CatalogServiceConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			GridStart:           string(domain.DefaultGridStart),
			GridEnd:             string(domain.DefaultGridEnd),
			IntervalMinutes:     domain.DefaultIntervalMinutes,
			ServiceDuration:     domain.DefaultServiceDuration,
			ServiceDurationUnit: string(domain.DefaultServiceDurationUnit),
		},
	}
}

// envOverrides значения из окружения, nil - переменная не задана
type envOverrides struct {
	DatabaseHost     *string `envconfig:"DB_HOST"`
	DatabasePort     *int    `envconfig:"DB_PORT"`
	DatabasePassword *string `envconfig:"DB_PASSWORD"`
	CatalogURL       *string `envconfig:"CATALOG_URL"`
	LogLevel         *string `envconfig:"LOG_LEVEL"`
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	setString(&c.Database.Host, env.DatabaseHost)
	setString(&c.Database.Password, env.DatabasePassword)
	setString(&c.CatalogService.URL, env.CatalogURL)
	setString(&c.Logs.Level, env.LogLevel)
	if env.DatabasePort != nil {
		c.Database.Port = *env.DatabasePort
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

// Validate проверяет обязательные поля и сетку по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.User == "" {
		return fmt.Errorf("%w: database.user is required", ErrInvalidConfig)
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	}
	if err := c.Booking.DefaultGrid(0).Validate(); err != nil {
		return fmt.Errorf("%w: booking: %v", ErrInvalidConfig, err)
	}
	return nil
}
