package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Keys    APIKeys
	GenAI   GenAIConfig
	Otel    OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type SessionConfig struct {
	Backend     string // "memory" or "redis"
	TTLMinutes  int
	EventsTopic string
}

type APIKeys struct {
	// GoogleGemini is the server-side fallback key. Callers can override it
	// per request; with no key at all, document operations are rejected.
	GoogleGemini string
}

type GenAIConfig struct {
	// BaseURL and Model fall back to the genai package defaults when empty.
	BaseURL              string
	Model                string
	ImportPollSeconds    int
	ImportMaxWaitSeconds int
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Session: SessionConfig{
			Backend:     getEnv("SESSION_BACKEND", "memory"),
			TTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
			EventsTopic: getEnv("SESSION_EVENTS_TOPIC", "SESSION_EVENTS"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		GenAI: GenAIConfig{
			BaseURL:              getEnv("GENAI_BASE_URL", ""),
			Model:                getEnv("GENAI_MODEL", ""),
			ImportPollSeconds:    getEnvAsInt("IMPORT_POLL_SECONDS", 2),
			ImportMaxWaitSeconds: getEnvAsInt("IMPORT_MAX_WAIT_SECONDS", 300),
		},
		Otel: OtelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
