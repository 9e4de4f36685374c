package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	GinMode    string

	JWTSecret   string
	JWTExpiry   time.Duration
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	CORSOrigins []string
	RateLimit   int

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	Timezone      string
	DigestCron    string
	RunMigrations bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tracker_user"),
		DBPassword: getEnv("DB_PASSWORD", "tracker_pass"),
		DBName:     getEnv("DB_NAME", "tracker_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),

		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:   time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		RateLimit:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),

		Timezone:      getEnv("TIMEZONE", "UTC"),
		DigestCron:    getEnv("DIGEST_CRON", "0 0 18 * * *"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
	}
}

// Location resolves Timezone, falling back to UTC for unknown names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown timezone %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
