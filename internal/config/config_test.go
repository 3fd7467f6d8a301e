package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DAILY_QUIZ_SIZE", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig()

	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 3, cfg.DailyQuizSize)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "/tmp/test.db?_foreign_keys=on", cfg.DSN())
}

func validConfig() *Config {
	return &Config{
		AppPort:          "8080",
		DBDriver:         DriverSQLite,
		SQLitePath:       "test.db",
		JWTSecret:        "0123456789abcdef",
		JWTTTL:           time.Hour,
		LogLevel:         "info",
		DailyQuizSize:    3,
		QuizCreditReward: 5,
		ExpiryInterval:   time.Hour,
		CacheTTL:         time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DBDriver = DriverMySQL
	assert.Error(t, cfg.Validate(), "mysql needs host, user, port and name")

	cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName = "root", "localhost", "3306", "budgetmate"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "root:@tcp(localhost:3306)/budgetmate?parseTime=true&loc=UTC", cfg.DSN())
}
