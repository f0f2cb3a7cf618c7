package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
}

func LoadEnv() Env {
	// .env is optional for local development; real env vars win.
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASSWORD"),
		DBHost: getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName: getEnv("DB_NAME", "versity_bms"),

		JWTSecret: getEnv("JWT_SECRET", "super-secret-key-change-me"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// JWTSecretBytes returns the signing secret in the form the token library
// expects.
func (e Env) JWTSecretBytes() []byte {
	return []byte(e.JWTSecret)
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
