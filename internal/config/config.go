package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Payroll      PayrollConfig
	Attendance   AttendanceConfig
	Invoice      InvoiceConfig
	Notification NotificationConfig
	Cron         CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       *time.Location
	AllowedOrigins []string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	CalendarTTL time.Duration
}

// StorageConfig selects where payslip and invoice archives are written.
type StorageConfig struct {
	Type     string // local or minio
	BasePath string
	BaseURL  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
}

type PayrollConfig struct {
	OvertimeMultiplier  decimal.Decimal
	StandardHoursPerDay decimal.Decimal
	PFRate              decimal.Decimal
	PFWageCeiling       decimal.Decimal
	ESIRate             decimal.Decimal
}

type AttendanceConfig struct {
	ShiftStartHour   int
	ShiftStartMinute int
	LateGraceMinutes int
}

type InvoiceConfig struct {
	DefaultGSTRate decimal.Decimal
}

type NotificationConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	WorkerCount   int
	QueueSize     int
}

type CronConfig struct {
	OvertimeBackfillHour int
	LookbackDays         int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading environment only")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "meta_innova_lms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "meta-innova-lms"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       loc,
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	calendarTTL, err := getEnvDuration("CALENDAR_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
		Password:    getEnv("REDIS_PASSWORD", ""),
		DB:          redisDB,
		CalendarTTL: calendarTTL,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:           getEnv("STORAGE_TYPE", "local"),
		BasePath:       getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:        getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		MinioBucket:    getEnv("MINIO_BUCKET", "lms-documents"),
	}

	// Payroll configuration
	if config.Payroll, err = loadPayroll(); err != nil {
		return nil, err
	}

	// Attendance configuration
	shiftHour, shiftMinute, err := parseClock(getEnv("SHIFT_START", "09:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_START: %w", err)
	}
	grace, err := getEnvInt("LATE_GRACE_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		ShiftStartHour:   shiftHour,
		ShiftStartMinute: shiftMinute,
		LateGraceMinutes: grace,
	}

	// Invoice configuration
	gstRate, err := getEnvDecimal("INVOICE_DEFAULT_GST_RATE", "18")
	if err != nil {
		return nil, err
	}
	config.Invoice = InvoiceConfig{DefaultGSTRate: gstRate}

	// Notification configuration
	flush, err := getEnvDuration("NOTIFICATION_FLUSH_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("NOTIFICATION_WORKERS", 2)
	if err != nil {
		return nil, err
	}

	config.Notification = NotificationConfig{
		BatchSize:     100,
		FlushInterval: flush,
		WorkerCount:   workers,
		QueueSize:     1000,
	}

	// Cron configuration
	backfillHour, err := getEnvInt("CRON_OVERTIME_BACKFILL_HOUR", 1)
	if err != nil {
		return nil, err
	}
	lookback, err := getEnvInt("CRON_OVERTIME_LOOKBACK_DAYS", 7)
	if err != nil {
		return nil, err
	}

	config.Cron = CronConfig{
		OvertimeBackfillHour: backfillHour,
		LookbackDays:         lookback,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	var cfg PayrollConfig
	var err error
	if cfg.OvertimeMultiplier, err = getEnvDecimal("PAYROLL_OVERTIME_MULTIPLIER", "1.5"); err != nil {
		return cfg, err
	}
	if cfg.StandardHoursPerDay, err = getEnvDecimal("PAYROLL_STANDARD_HOURS_PER_DAY", "8"); err != nil {
		return cfg, err
	}
	if cfg.PFRate, err = getEnvDecimal("PAYROLL_PF_RATE", "12"); err != nil {
		return cfg, err
	}
	if cfg.PFWageCeiling, err = getEnvDecimal("PAYROLL_PF_WAGE_CEILING", "15000"); err != nil {
		return cfg, err
	}
	if cfg.ESIRate, err = getEnvDecimal("PAYROLL_ESI_RATE", "0.75"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Storage.Type != "local" && c.Storage.Type != "minio" {
		return fmt.Errorf("STORAGE_TYPE must be local or minio, got %q", c.Storage.Type)
	}
	if c.Storage.Type == "minio" && (c.Storage.MinioAccessKey == "" || c.Storage.MinioSecretKey == "") {
		return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage")
	}
	if c.Cron.OvertimeBackfillHour < 0 || c.Cron.OvertimeBackfillHour > 23 {
		return fmt.Errorf("CRON_OVERTIME_BACKFILL_HOUR must be 0-23")
	}
	if !c.Payroll.StandardHoursPerDay.IsPositive() {
		return fmt.Errorf("PAYROLL_STANDARD_HOURS_PER_DAY must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// parseClock reads an HH:MM wall clock time.
func parseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
