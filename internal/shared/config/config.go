package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	LLMProvider     string
	LLMModel        string
	Env             string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	provider := normalizeProvider(getEnv("LLM_PROVIDER", "deepseek"))

	if env == "production" && os.Getenv(apiKeyVar(provider)) == "" {
		log.Printf("%s is required in production", apiKeyVar(provider))
	}

	// An all-blank CORS_ALLOW_ORIGINS value (for example ",") parses to no
	// origins at all; fall back to the wildcard default.
	origins := splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: origins,
		LLMProvider:     provider,
		LLMModel:        getEnv("LLM_MODEL", ""),
		Env:             env,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini":
		return "gemini"
	default:
		return "deepseek"
	}
}

func apiKeyVar(provider string) string {
	if provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "DEEPSEEK_API_KEY"
}
