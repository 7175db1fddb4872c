package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port   string
	Env    string
	Origin string // "*" or a comma-separated list, see middleware.CORS

	// MongoDB
	MongoURI         string
	MongoDB          string
	MongoForceTLS    bool
	MongoInsecureTLS bool
	MongoLoadTimeout time.Duration

	// PostgreSQL
	PostgresURI string

	// Redis
	RedisAddr         string
	EventStream       string
	EventStreamMaxLen int64
	EventWorkers      int
	RecommendationTTL time.Duration

	// Storage
	GCSBucket          string
	GCSCredentialsFile string
	GCSPublicObjects   bool
	MaxRecordingBytes  int64

	// Logging
	LogLevel string
}

// Load reads the environment, after applying a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getEnvOrDefault("PORT", "8080"),
		Env:    getEnvOrDefault("GO_ENV", "development"),
		Origin: getEnvOrDefault("CORS_ORIGIN", "*"),

		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnvOrDefault("MONGO_DB", "mentorship"),
		MongoForceTLS:    getEnvAsBoolOrDefault("MONGO_FORCE_TLS_CONFIG", false),
		MongoInsecureTLS: getEnvAsBoolOrDefault("MONGO_INSECURE_TLS", false),
		MongoLoadTimeout: getEnvAsDurationOrDefault("MONGO_LOAD_TIMEOUT", 30*time.Second),

		PostgresURI: os.Getenv("POSTGRES_URI"),

		RedisAddr:         firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		EventStream:       getEnvOrDefault("SESSION_EVENT_STREAM", "sessions:events"),
		EventStreamMaxLen: int64(getEnvAsIntOrDefault("SESSION_EVENT_STREAM_MAXLEN", 10000)),
		EventWorkers:      getEnvAsIntOrDefault("SESSION_EVENT_WORKERS", 2),
		RecommendationTTL: getEnvAsDurationOrDefault("RECOMMENDATION_CACHE_TTL", 30*time.Minute),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GCSPublicObjects:   getEnvAsBoolOrDefault("GCS_PUBLIC_OBJECTS", false),
		MaxRecordingBytes:  int64(getEnvAsIntOrDefault("MAX_RECORDING_MB", 512)) << 20,

		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
