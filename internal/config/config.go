package config

import (
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/go-playground/validator/v10" // For configuration validation
	"github.com/joho/godotenv"               // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort            string        `validate:"required,numeric"`                          // Application port
	DBDriver           string        `validate:"required,oneof=mysql postgres sqlite"`      // Database driver
	DBUser             string        `validate:"required_unless=DBDriver sqlite"`           // Database user
	DBPassword         string        // Database password
	DBHost             string        `validate:"required_unless=DBDriver sqlite"`           // Database host
	DBPort             string        `validate:"required_unless=DBDriver sqlite"`           // Database port
	DBName             string        `validate:"required_unless=DBDriver sqlite"`           // Database name
	SQLitePath         string        `validate:"required_if=DBDriver sqlite"`               // SQLite file path
	JWTSecret          string        `validate:"required,min=16"`                           // JWT secret key
	JWTTTL             time.Duration `validate:"gt=0"`                                      // Token lifetime
	RedisAddr          string        // Redis server address, empty disables caching
	RedisPass          string        // Redis password
	RedisDB            int           `validate:"gte=0"`                                     // Redis database number
	IsProd             bool          // Is production environment
	LogLevel           string        `validate:"oneof=trace debug info warn warning error"` // Logrus level
	CORSOrigins        []string      // Allowed CORS origins
	DailyQuizSize      int           `validate:"gt=0"`                                      // Questions served per day
	QuizCreditReward   int           `validate:"gte=0"`                                     // Credits per correct answer
	StreakCreditReward int           `validate:"gte=0"`                                     // Credits per counted check-in day
	ExpiryInterval     time.Duration `validate:"gt=0"`                                      // Subscription expiry sweep interval
	CacheTTL           time.Duration `validate:"gt=0"`                                      // Redis cache entry lifetime
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DBDriver:           getEnv("DB_DRIVER", DriverMySQL),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBName:             os.Getenv("DB_NAME"),
		SQLitePath:         getEnv("SQLITE_PATH", "budgetmate.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTTTL:             getDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPass:          os.Getenv("REDIS_PASS"),
		RedisDB:            getInt("REDIS_DB", 0),
		IsProd:             os.Getenv("IS_PROD") == "true",
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        getList("CORS_ORIGINS", []string{"*"}),
		DailyQuizSize:      getInt("DAILY_QUIZ_SIZE", 3),
		QuizCreditReward:   getInt("QUIZ_CREDIT_REWARD", 5),
		StreakCreditReward: getInt("STREAK_CREDIT_REWARD", 1),
		ExpiryInterval:     getDuration("EXPIRY_INTERVAL", time.Hour),
		CacheTTL:           getDuration("CACHE_TTL", 60*time.Second),
	}
}

// Validate checks that all required settings are present and well formed
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case DriverSQLite:
		return c.SQLitePath + "?_foreign_keys=on"
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
