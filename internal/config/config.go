package config

import (
	"os"
	"strconv"
	"strings"
)

// placeholderAPIKey is what ships in the example .env; it is treated the same
// as no key at all.
const placeholderAPIKey = "your_openai_api_key_here"

type Config struct {
	APIPort  string
	LogLevel string

	LLMProvider   string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAIAPIKey  string

	EmbeddingModel string

	CatalogPath string
	IndexPath   string
	SchemasPath string

	RAGTopK int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		LLMProvider:   mustEnv("LLM_PROVIDER", "openai"),
		OpenAIBaseURL: mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   mustEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:  mustEnv("OPENAI_API_KEY", ""),

		EmbeddingModel: mustEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		CatalogPath: mustEnv("CATALOG_PATH", "./data/products.json"),
		IndexPath:   mustEnv("INDEX_PATH", "./data/index.db"),
		SchemasPath: mustEnv("SCHEMAS_PATH", ""),

		RAGTopK: mustEnvInt("RAG_TOP_K", 3),
	}
}

// APIKeyConfigured reports whether a usable key is present. A missing or
// placeholder key is not a startup error; LLM calls fail at call time.
func (c Config) APIKeyConfigured() bool {
	key := strings.TrimSpace(c.OpenAIAPIKey)
	return key != "" && key != placeholderAPIKey
}

// EffectiveAPIKey returns the key to hand to the provider client, empty when
// only a placeholder is configured.
func (c Config) EffectiveAPIKey() string {
	if !c.APIKeyConfigured() {
		return ""
	}
	return c.OpenAIAPIKey
}

// MaskedAPIKey is safe to log.
func (c Config) MaskedAPIKey() string {
	key := strings.TrimSpace(c.OpenAIAPIKey)
	if len(key) <= 12 {
		return "***"
	}
	return key[:8] + "..." + key[len(key)-4:]
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
