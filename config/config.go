package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type CORSConfig struct {
	AllowAll       bool
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Max      int
	Window   time.Duration
	RedisURL string // Optional; counters are kept in process memory when empty
}

// UsesRedis returns true if rate limit counters should be shared through Redis
func (c RateLimitConfig) UsesRedis() bool {
	return c.RedisURL != ""
}

type AppConfig struct {
	// Datastore configuration
	MongoURI              string // Optional at load time; connecting without it fails later
	MongoDatabase         string // Optional, defaults to the database in the URI or "test"
	RequireDatastoreReady bool

	Port           string // Optional with default "3000"
	Environment    string
	BodyLimitBytes int64

	CORSConfig      CORSConfig
	RateLimitConfig RateLimitConfig
}

const (
	DefaultPort           = "3000"
	DefaultRateLimitMax   = 50
	DefaultRateLimitMS    = 60000
	DefaultBodyLimitBytes = 100 * 1024
)

var DefaultAllowedOrigins = []string{"http://example1.com", "http://example2.com"}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Printf("⚠️ MONGODB_URI is not set - datastore connection will fail")
	}

	corsAllowAll, err := getEnvBool("CORS_ALLOW_ALL", true)
	if err != nil {
		return nil, err
	}

	requireReady, err := getEnvBool("REQUIRE_DATASTORE_READY", false)
	if err != nil {
		return nil, err
	}

	rateLimitMax, err := getEnvInt("RATE_LIMIT_MAX", DefaultRateLimitMax)
	if err != nil {
		return nil, err
	}
	if rateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", rateLimitMax)
	}

	rateLimitWindowMS, err := getEnvInt("RATE_LIMIT_WINDOW_MS", DefaultRateLimitMS)
	if err != nil {
		return nil, err
	}
	if rateLimitWindowMS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive, got %d", rateLimitWindowMS)
	}

	bodyLimit, err := getEnvInt("BODY_LIMIT_BYTES", DefaultBodyLimitBytes)
	if err != nil {
		return nil, err
	}
	if bodyLimit <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", bodyLimit)
	}

	config := &AppConfig{
		MongoURI:              mongoURI,
		MongoDatabase:         os.Getenv("MONGODB_DATABASE"),
		RequireDatastoreReady: requireReady,
		Port:                  getEnvWithDefault("PORT", DefaultPort),
		Environment:           getEnvWithDefault("ENVIRONMENT", "dev"),
		BodyLimitBytes:        int64(bodyLimit),

		CORSConfig: CORSConfig{
			AllowAll:       corsAllowAll,
			AllowedOrigins: splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))),
		},

		RateLimitConfig: RateLimitConfig{
			Max:      rateLimitMax,
			Window:   time.Duration(rateLimitWindowMS) * time.Millisecond,
			RedisURL: os.Getenv("RATE_LIMIT_REDIS_URL"),
		},
	}

	if config.CORSConfig.AllowAll {
		log.Printf("⚠️ CORS allow-all mode enabled - every origin is accepted")
	} else {
		log.Printf("✅ CORS restricted to %d origin(s): %s",
			len(config.CORSConfig.AllowedOrigins), strings.Join(config.CORSConfig.AllowedOrigins, ", "))
	}

	if config.RateLimitConfig.UsesRedis() {
		log.Printf("✅ Rate limit counters stored in Redis")
	} else {
		log.Printf("✅ Rate limit counters stored in process memory")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return parsed, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return parsed, nil
}

// splitList splits a comma separated list, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
