package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	Env        string

	// Identity resolution. AuthMode is "jwt" (verify bearer tokens with
	// JWTSecret) or "mock" (local development shim).
	AuthMode       string
	JWTSecret      string
	ClaimNamespace string
	MockTenant     string

	// Per-tenant list cache policy.
	CacheTTL   time.Duration
	CacheSweep time.Duration

	// AI suggestion collaborator. Empty key disables suggestions.
	GeminiAPIKey string
	GeminiModel  string

	CORSOrigins []string
	LogFile     string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskpilot_user"),
		DBPassword: getEnv("DB_PASSWORD", "taskpilot_pass"),
		DBName:     getEnv("DB_NAME", "taskpilot_db"),
		ServerPort: getEnv("SERVER_PORT", "4000"),
		Env:        getEnv("APP_ENV", "development"),

		AuthMode:       getEnv("AUTH_MODE", "jwt"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		ClaimNamespace: getEnv("CLAIM_NAMESPACE", "https://taskpilot-api"),
		MockTenant:     getEnv("MOCK_TENANT", "tenant-A"),

		CacheTTL:   getEnvSeconds("CACHE_TTL_SECONDS", 300),
		CacheSweep: getEnvSeconds("CACHE_SWEEP_SECONDS", 60),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		CORSOrigins: getEnvList("CORS_ORIGINS", "http://localhost:5173"),
		LogFile:     getEnv("LOG_FILE", "logs/taskpilot.log"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvSeconds(key string, defaultVal int) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("⚠️  Invalid %s=%q, using default %ds", key, value, defaultVal)
	}
	return time.Duration(defaultVal) * time.Second
}

func getEnvList(key, defaultVal string) []string {
	raw := getEnv(key, defaultVal)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
