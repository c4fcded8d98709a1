package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Upstream
	UpstreamProvider string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	GeminiAPIKey     string
	DefaultModel     string

	// Frontend
	FrontendURL string
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	ProxyURL     string
	PrefsPath    string
	PrefsRedis   string
	Profile      string
	DownloadDir  string
	LogLevel     string
	LogFile      string
	ProxyTimeout int // seconds, 0 waits forever
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		UpstreamProvider: getEnvOrDefault("UPSTREAM_PROVIDER", ProviderOpenAI),
		OpenAIBaseURL:    getEnvOrDefault("OPENAI_BASE_URL", ""),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "*"),
	}

	switch cfg.UpstreamProvider {
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
		cfg.DefaultModel = getEnvOrDefault("DEFAULT_MODEL", "gemini-1.5-flash")
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
		cfg.DefaultModel = getEnvOrDefault("DEFAULT_MODEL", "gpt-4o-mini")
	default:
		panic(fmt.Sprintf("unsupported UPSTREAM_PROVIDER %q", cfg.UpstreamProvider))
	}

	return cfg
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		ProxyURL:     getEnvOrDefault("NOVA_PROXY_URL", "http://localhost:8080"),
		PrefsPath:    getEnvOrDefault("NOVA_PREFS_PATH", defaultPrefsPath()),
		PrefsRedis:   getEnvOrDefault("NOVA_PREFS_REDIS_URL", ""),
		Profile:      getEnvOrDefault("NOVA_PROFILE", "default"),
		DownloadDir:  getEnvOrDefault("NOVA_DOWNLOAD_DIR", "."),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFile:      getEnvOrDefault("NOVA_LOG_FILE", "nova.log"),
		ProxyTimeout: getEnvAsIntOrDefault("NOVA_PROXY_TIMEOUT", 0),
	}
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "preferences.toml"
	}
	return filepath.Join(home, ".nova", "preferences.toml")
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

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
