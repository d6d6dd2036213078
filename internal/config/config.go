package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	JWTSecret            string
	JWTExpirationMinutes int
	Database             DatabaseConfig
	Google               GoogleAuthConfig
	Scheduling           SchedulingConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// GoogleAuthConfig holds Google identity login configuration
type GoogleAuthConfig struct {
	AllowedDomain string
	DefaultRole   string
}

// SchedulingConfig holds the tunable parameters of the appointment
// admission check. The separation buffer is deliberately a named,
// configurable value rather than a constant baked into a query.
type SchedulingConfig struct {
	BufferMinutes          int
	WeeklyQuota            int
	DefaultDurationMinutes int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Username: getEnv("DB_USERNAME", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Build DSN for the PostgreSQL connection
	dbConfig.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host, dbConfig.Port, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.SSLMode)

	googleConfig := GoogleAuthConfig{
		AllowedDomain: getEnv("GOOGLE_ALLOWED_DOMAIN", "amigo.edu.co"),
		DefaultRole:   getEnv("GOOGLE_DEFAULT_ROLE", "therapist"),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	bufferMinutes, err := strconv.Atoi(getEnv("SCHEDULING_BUFFER_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULING_BUFFER_MINUTES: %w", err)
	}

	weeklyQuota, err := strconv.Atoi(getEnv("SCHEDULING_WEEKLY_QUOTA", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULING_WEEKLY_QUOTA: %w", err)
	}

	defaultDuration, err := strconv.Atoi(getEnv("SCHEDULING_DEFAULT_DURATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULING_DEFAULT_DURATION_MINUTES: %w", err)
	}

	return &Config{
		Port:                 getEnv("PORT", "5001"),
		Origin:               getEnv("ORIGIN", "http://localhost:4200"),
		Environment:          getEnv("APP_ENV", "development"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Database:             dbConfig,
		Google:               googleConfig,
		Scheduling: SchedulingConfig{
			BufferMinutes:          bufferMinutes,
			WeeklyQuota:            weeklyQuota,
			DefaultDurationMinutes: defaultDuration,
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
