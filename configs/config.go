package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	defaultJWTSecret = "fallback-secret-key"
)

type Config struct {
	Port       int
	Env        string
	Store      string
	DBURL      string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	CORSOrigin string
	LogDir     string
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns DATABASE_URL when set, otherwise a lib/pq keyword DSN built from the DB_* values.
func (c Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// RedisEnabled is false when no REDIS_HOST is configured; the task cache is skipped then.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:       envInt("PORT", 5000),
		Env:        envString("GO_ENV", "development"),
		Store:      envString("STORE", StorePostgres),
		DBURL:      os.Getenv("DATABASE_URL"),
		DBHost:     envString("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBNameTest: os.Getenv("DB_NAME_TEST"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     envInt("REDIS_PORT", 6379),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      envDuration("CACHE_TTL", time.Hour),

		JWTSecret:    envString("JWT_SECRET", defaultJWTSecret),
		JWTExpiresIn: envDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		BcryptCost:   envInt("BCRYPT_COST", 10),

		CORSOrigin: envString("CORS_ORIGIN", "http://localhost:5173"),
		LogDir:     os.Getenv("LOG_DIR"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
