package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Store      StoreConfig
	Attendance AttendanceConfig
	CORS       CORSConfig
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
	Port     int
	Env      string
	LogLevel string
}

// StoreConfig selects the repository backend
type StoreConfig struct {
	Type            string // postgres | memory
	ProfileSeedFile string
}

// AttendanceConfig holds the aggregation policy knobs
type AttendanceConfig struct {
	SubtractBreaks   bool
	DoubleInPolicy   attendance.DoubleInPolicy
	DefaultBaseHours float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.Store = StoreConfig{
		Type:            strings.ToLower(getEnv("STORE_TYPE", StorePostgres)),
		ProfileSeedFile: getEnv("PROFILE_SEED_FILE", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	subtractBreaks, err := strconv.ParseBool(getEnv("ATTENDANCE_SUBTRACT_BREAKS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SUBTRACT_BREAKS: %w", err)
	}
	doubleIn, ok := attendance.ParseDoubleInPolicy(getEnv("ATTENDANCE_DOUBLE_IN_POLICY", string(attendance.DoubleInFirstWins)))
	if !ok {
		return nil, fmt.Errorf("invalid ATTENDANCE_DOUBLE_IN_POLICY: want %s or %s", attendance.DoubleInFirstWins, attendance.DoubleInCloseAndReopen)
	}
	baseHours, err := strconv.ParseFloat(getEnv("ATTENDANCE_DEFAULT_BASE_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEFAULT_BASE_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		SubtractBreaks:   subtractBreaks,
		DoubleInPolicy:   doubleIn,
		DefaultBaseHours: baseHours,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_TYPE must be %s or %s", StorePostgres, StoreMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.DefaultBaseHours < 0 || c.Attendance.DefaultBaseHours > 24 {
		return fmt.Errorf("ATTENDANCE_DEFAULT_BASE_HOURS must be between 0 and 24")
	}
	return nil
}

// AttendancePolicy converts the attendance section into the aggregation policy
func (c *Config) AttendancePolicy() attendance.Policy {
	return attendance.Policy{
		SubtractBreaksFromWork: c.Attendance.SubtractBreaks,
		DoubleIn:               c.Attendance.DoubleInPolicy,
		DefaultBaseHours:       c.Attendance.DefaultBaseHours,
	}
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
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
