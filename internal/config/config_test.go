package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	os.Setenv("TEST_REQUIRED", "value123")
	defer os.Unsetenv("TEST_REQUIRED")

	result := mustGetEnv("TEST_REQUIRED")
	if result != "value123" {
		t.Errorf("Expected 'value123', got %q", result)
	}
}

func TestLoad_DefaultsToOpenAI(t *testing.T) {
	t.Setenv("UPSTREAM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DEFAULT_MODEL", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, ProviderOpenAI, cfg.UpstreamProvider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.DefaultModel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoad_GeminiRequiresItsOwnKey(t *testing.T) {
	t.Setenv("UPSTREAM_PROVIDER", ProviderGemini)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "")

	assert.Panics(t, func() { Load() })

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("DEFAULT_MODEL", "")
	cfg := Load()
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.DefaultModel)
	assert.Empty(t, cfg.OpenAIAPIKey)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("UPSTREAM_PROVIDER", "carrier-pigeon")
	assert.Panics(t, func() { Load() })
}

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("NOVA_PROXY_URL", "")
	t.Setenv("NOVA_PROFILE", "")
	t.Setenv("NOVA_PREFS_PATH", "")
	t.Setenv("NOVA_PROXY_TIMEOUT", "")

	cfg := LoadClient()

	assert.Equal(t, "http://localhost:8080", cfg.ProxyURL)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, 0, cfg.ProxyTimeout)
	assert.True(t, strings.HasSuffix(cfg.PrefsPath, "preferences.toml"))
}
