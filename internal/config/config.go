package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/timeofday"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverFile     = "file"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Store    StoreConfig
	Payroll  PayrollConfig
	Leave    LeaveConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	RateLimit      int // requests per IP per minute
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// StoreConfig selects where employee and attendance records are read from.
type StoreConfig struct {
	Driver  string
	DataDir string // flat-file driver only
}

// PayrollConfig overrides the attendance rules and the deduction schedule.
type PayrollConfig struct {
	GraceEnd     timeofday.TimeOfDay
	ShiftEnd     timeofday.TimeOfDay
	BreakMinutes int
	ScheduleFile string // empty means the built-in schedule

	// Monthly register archive; disabled when ArchiveDir is empty
	ArchiveDir      string
	ArchiveSchedule string // cron spec or descriptor such as @daily
}

// LeaveConfig is the starting balance, in days, of each leave type.
type LeaveConfig struct {
	SickDays      int
	VacationDays  int
	EmergencyDays int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}
	var errs []error

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	errs = appendErr(errs, "APP_PORT", err)
	rateLimit, err := strconv.Atoi(getEnv("APP_RATE_LIMIT", "200"))
	errs = appendErr(errs, "APP_RATE_LIMIT", err)
	requestTimeout, err := time.ParseDuration(getEnv("APP_REQUEST_TIMEOUT", "60s"))
	errs = appendErr(errs, "APP_REQUEST_TIMEOUT", err)

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "payroll-engine"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("APP_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimit:      rateLimit,
		RequestTimeout: requestTimeout,
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	errs = appendErr(errs, "DB_PORT", err)
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	errs = appendErr(errs, "DB_MAX_CONNS", err)
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	errs = appendErr(errs, "DB_MIN_CONNS", err)
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "false"))
	errs = appendErr(errs, "DB_AUTO_MIGRATE", err)

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "payroll_engine"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(maxConns),
		MinConns:    int32(minConns),
		AutoMigrate: autoMigrate,
	}

	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	errs = appendErr(errs, "JWT_ACCESS_EXPIRATION_TIME", err)

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	config.Store = StoreConfig{
		Driver:  strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DataDir: getEnv("STORE_DATA_DIR", "data"),
	}

	graceEnd, err := timeofday.Parse(getEnv("PAYROLL_GRACE_END", "08:15"))
	errs = appendErr(errs, "PAYROLL_GRACE_END", err)
	shiftEnd, err := timeofday.Parse(getEnv("PAYROLL_SHIFT_END", "17:00"))
	errs = appendErr(errs, "PAYROLL_SHIFT_END", err)
	breakMinutes, err := strconv.Atoi(getEnv("PAYROLL_BREAK_MINUTES", "60"))
	errs = appendErr(errs, "PAYROLL_BREAK_MINUTES", err)

	config.Payroll = PayrollConfig{
		GraceEnd:     graceEnd,
		ShiftEnd:     shiftEnd,
		BreakMinutes: breakMinutes,
		ScheduleFile: getEnv("PAYROLL_SCHEDULE_FILE", ""),

		ArchiveDir:      getEnv("PAYROLL_ARCHIVE_DIR", ""),
		ArchiveSchedule: getEnv("PAYROLL_ARCHIVE_SCHEDULE", "@daily"),
	}

	sickDays, err := strconv.Atoi(getEnv("LEAVE_SICK_DAYS", "5"))
	errs = appendErr(errs, "LEAVE_SICK_DAYS", err)
	vacationDays, err := strconv.Atoi(getEnv("LEAVE_VACATION_DAYS", "5"))
	errs = appendErr(errs, "LEAVE_VACATION_DAYS", err)
	emergencyDays, err := strconv.Atoi(getEnv("LEAVE_EMERGENCY_DAYS", "5"))
	errs = appendErr(errs, "LEAVE_EMERGENCY_DAYS", err)

	config.Leave = LeaveConfig{
		SickDays:      sickDays,
		VacationDays:  vacationDays,
		EmergencyDays: emergencyDays,
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("STORE_DATA_DIR is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverFile, c.Store.Driver)
	}

	if c.App.RateLimit <= 0 {
		return fmt.Errorf("APP_RATE_LIMIT must be positive")
	}
	if c.App.RequestTimeout <= 0 {
		return fmt.Errorf("APP_REQUEST_TIMEOUT must be positive")
	}
	if c.Payroll.BreakMinutes < 0 {
		return fmt.Errorf("PAYROLL_BREAK_MINUTES must not be negative")
	}
	if c.Payroll.ArchiveDir != "" && strings.TrimSpace(c.Payroll.ArchiveSchedule) == "" {
		return fmt.Errorf("PAYROLL_ARCHIVE_SCHEDULE is required when PAYROLL_ARCHIVE_DIR is set")
	}
	if c.Leave.SickDays < 0 || c.Leave.VacationDays < 0 || c.Leave.EmergencyDays < 0 {
		return fmt.Errorf("LEAVE_SICK_DAYS, LEAVE_VACATION_DAYS and LEAVE_EMERGENCY_DAYS must not be negative")
	}
	if !c.Payroll.GraceEnd.Before(c.Payroll.ShiftEnd) {
		return fmt.Errorf("PAYROLL_GRACE_END must be before PAYROLL_SHIFT_END")
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
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

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func appendErr(errs []error, key string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("invalid %s: %w", key, err))
	}
	return errs
}
