package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// SecretKey signs session tokens. Rotating it invalidates every
	// outstanding token.
	SecretKey string        `env:"SECRET_KEY,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"30m"`

	MilvusURI        string `env:"MILVUS_URI,required"`
	MilvusCollection string `env:"MILVUS_COLLECTION" envDefault:"books_collection"`

	// The OpenAI credential must be present at startup; the service never
	// prompts for it.
	OpenAIKey      string `env:"OPENAI_API_KEY,required"`
	ChatModel      string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`

	// Upper bound on any single call to the vector store or the LLM.
	ExternalTimeout time.Duration `env:"EXTERNAL_TIMEOUT" envDefault:"15s"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}
