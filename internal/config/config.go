package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не прочитан
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	App       AppConfig       `toml:"app"`
	Booking   BookingConfig   `toml:"booking"`
	Shipping  ShippingConfig  `toml:"shipping"`
	Reminders RemindersConfig `toml:"reminders"`
	Mail      MailConfig      `toml:"mail"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrationsDir   string `toml:"migrations_dir"`    // пусто: миграции не применяются при старте
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

type AppConfig struct {
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс сервиса
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

type BookingConfig struct {
	ShippingWeekLimit int    `toml:"shipping_week_limit"`
	WeekStart         string `toml:"week_start"` // sunday | monday
}

// WeekStartDay первый день календарной недели
func (b BookingConfig) WeekStartDay() time.Weekday {
	if strings.EqualFold(b.WeekStart, "monday") {
		return time.Monday
	}
	return time.Sunday
}

type ShippingConfig struct {
	LocalCities []string `toml:"local_cities"` // города с курьером PICAP
}

type RemindersConfig struct {
	Enabled         bool                   `toml:"enabled"`
	IntervalSeconds int                    `toml:"interval_seconds"`
	RunOnStart      bool                   `toml:"run_on_start"`
	SendTimeout     int                    `toml:"send_timeout"` // секунды
	Buckets         []ReminderBucketConfig `toml:"buckets"`
}

type ReminderBucketConfig struct {
	Name             string `toml:"name"`
	LeadMinutes      int    `toml:"lead_minutes"`
	ToleranceMinutes int    `toml:"tolerance_minutes"`
	Marker           string `toml:"marker"`
}

// DomainBuckets конвертирует бакеты конфигурации в доменные
func (r RemindersConfig) DomainBuckets() []domain.ReminderBucket {
	out := make([]domain.ReminderBucket, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		out = append(out, domain.ReminderBucket{
			Name:             b.Name,
			LeadMinutes:      b.LeadMinutes,
			ToleranceMinutes: b.ToleranceMinutes,
			Marker:           b.Marker,
		})
	}
	return out
}

type MailConfig struct {
	Enabled     bool     `toml:"enabled"`
	Brand       string   `toml:"brand"` // подпись в письмах
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	Username    string   `toml:"username"`
	Password    string   `toml:"password"`
	From        string   `toml:"from"`
	ReplyTo     string   `toml:"reply_to"`
	AdminNotify []string `toml:"admin_notify"`
	QueueSize   int      `toml:"queue_size"`
	Workers     int      `toml:"workers"`
	SendTimeout int      `toml:"send_timeout"` // секунды
}

type RateLimitConfig struct {
	Enabled       bool     `toml:"enabled"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	CreateIP      RateRule `toml:"create_ip"`      // создание записи с одного IP
	Create        RateRule `toml:"create"`         // второй, более длинный лимит на создание
	AdminFailures RateRule `toml:"admin_failures"` // неудачные попытки входа в админку
}

// RateRule лимит с фиксированным окном
type RateRule struct {
	Limit         int `toml:"limit"`
	WindowSeconds int `toml:"window_seconds"`
}

// Window длительность окна
func (r RateRule) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func (r RateRule) valid() bool {
	return r.Limit > 0 && r.WindowSeconds > 0
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает TOML-файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env не обязателен: в проде переменные приходят из окружения
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
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
			MigrationsDir:   "migrations",
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment_service",
		},
		App: AppConfig{Timezone: "America/Bogota"},
		Booking: BookingConfig{
			ShippingWeekLimit: domain.DefaultShippingWeekLimit,
			WeekStart:         "sunday",
		},
		Shipping: ShippingConfig{LocalCities: []string{"Bogotá"}},
		Reminders: RemindersConfig{
			Enabled:         true,
			IntervalSeconds: 60,
			RunOnStart:      true,
			SendTimeout:     15,
		},
		Mail: MailConfig{
			Brand:       "TechVenturesCO",
			Port:        587,
			QueueSize:   100,
			Workers:     2,
			SendTimeout: 15,
		},
		RateLimit: RateLimitConfig{
			RedisAddr:     "localhost:6379",
			Prefix:        "rl",
			CreateIP:      RateRule{Limit: 2, WindowSeconds: 300},
			Create:        RateRule{Limit: 3, WindowSeconds: 900},
			AdminFailures: RateRule{Limit: 100, WindowSeconds: 600},
		},
	}
}

// applyEnv переопределяет секреты и лимиты из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Mail.Host, "SMTP_HOST")
	setString(&c.Mail.Username, "SMTP_USER")
	setString(&c.Mail.Password, "SMTP_PASS")
	setString(&c.Mail.From, "MAIL_FROM")
	setString(&c.Mail.ReplyTo, "MAIL_REPLY_TO")
	setString(&c.RateLimit.RedisAddr, "REDIS_ADDR")
	setString(&c.RateLimit.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Admin.Token, "ADMIN_TOKEN")
	setString(&c.App.Timezone, "TZ_NAME")

	if v, ok := os.LookupEnv("MAIL_NOTIFY"); ok {
		c.Mail.AdminNotify = splitList(v)
	}

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Database.Port, "DB_PORT"},
		{&c.Mail.Port, "SMTP_PORT"},
		{&c.Booking.ShippingWeekLimit, "BOOKING_LIMIT_SHIPPING_PER_WEEK"},
	}
	for _, it := range ints {
		v, ok := os.LookupEnv(it.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, it.key, v)
		}
		*it.dst = n
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%w: app.timezone %q: %v", ErrInvalidConfig, c.App.Timezone, err)
	}
	if c.Booking.ShippingWeekLimit <= 0 {
		return fmt.Errorf("%w: booking.shipping_week_limit must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Booking.WeekStart) {
	case "", "sunday", "monday":
	default:
		return fmt.Errorf("%w: booking.week_start must be sunday or monday", ErrInvalidConfig)
	}

	if len(c.Reminders.Buckets) == 0 {
		for _, b := range domain.DefaultReminderBuckets {
			c.Reminders.Buckets = append(c.Reminders.Buckets, ReminderBucketConfig{
				Name:             b.Name,
				LeadMinutes:      b.LeadMinutes,
				ToleranceMinutes: b.ToleranceMinutes,
				Marker:           b.Marker,
			})
		}
	}
	if c.Reminders.Enabled && c.Reminders.IntervalSeconds <= 0 {
		return fmt.Errorf("%w: reminders.interval_seconds must be positive", ErrInvalidConfig)
	}
	for _, b := range c.Reminders.Buckets {
		if !domain.IsKnownMarker(b.Marker) {
			return fmt.Errorf("%w: reminders bucket %q has unknown marker %q", ErrInvalidConfig, b.Name, b.Marker)
		}
		if b.LeadMinutes <= 0 || b.ToleranceMinutes < 0 || b.ToleranceMinutes > b.LeadMinutes {
			return fmt.Errorf("%w: reminders bucket %q has invalid lead/tolerance", ErrInvalidConfig, b.Name)
		}
	}

	if c.Mail.Enabled {
		if c.Mail.Host == "" || c.Mail.From == "" {
			return fmt.Errorf("%w: mail.host and mail.from are required when mail is enabled", ErrInvalidConfig)
		}
	}
	if c.Mail.QueueSize <= 0 || c.Mail.Workers <= 0 {
		return fmt.Errorf("%w: mail.queue_size and mail.workers must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled {
		rules := []struct {
			name string
			rule RateRule
		}{
			{"create_ip", c.RateLimit.CreateIP},
			{"create", c.RateLimit.Create},
			{"admin_failures", c.RateLimit.AdminFailures},
		}
		for _, r := range rules {
			if !r.rule.valid() {
				return fmt.Errorf("%w: rate_limit.%s limit and window_seconds must be positive", ErrInvalidConfig, r.name)
			}
		}
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
