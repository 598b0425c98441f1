package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for submissions
const (
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"
)

// Config holds all runtime configuration for the server
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	JWTSecret     string
	StaffUsername string
	StaffPassword string
	PatientTTL    time.Duration
	OTPTTL        time.Duration
	OTPEcho       bool // Return the OTP in the response (no SMS gateway)
	DraftTTL      time.Duration

	Storage    string
	SQLitePath string
	PolicyFile string

	LogLevel       string
	AllowedOrigins string
}

// Load reads .env (if present) and then the environment
func Load() *Config {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "medfeedback"),
		RedisAddr: strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		HTTPPort:  getEnv("PORT", "8080"),

		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		StaffUsername: getEnv("STAFF_USERNAME", "admin"),
		StaffPassword: getEnv("STAFF_PASSWORD", "password123"),
		PatientTTL:    getDuration("PATIENT_TOKEN_TTL", 30*24*time.Hour),
		OTPTTL:        getDuration("OTP_TTL", 5*time.Minute),
		OTPEcho:       getBool("OTP_ECHO", false),
		DraftTTL:      getDuration("DRAFT_TTL", 7*24*time.Hour),

		Storage:    strings.ToLower(getEnv("STORAGE", StorageMongo)),
		SQLitePath: getEnv("SQLITE_PATH", "medfeedback.db"),
		PolicyFile: getEnv("POLICY_FILE", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return v
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
