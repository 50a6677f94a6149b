package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/trip-planner-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// External service configurations
	GeminiCfg    GeminiConfig    `envPrefix:"GEMINI_"`
	EmbeddingCfg EmbeddingConfig `envPrefix:"EMBEDDING_"`
	CurrencyCfg  CurrencyConfig  `envPrefix:"CURRENCY_"`

	// Retrieval pipeline configuration
	IndexCfg     IndexConfig     `envPrefix:"INDEX_"`
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// Generation ceiling: the only operation allowed to block a request
	// for this long before the pipeline is cancelled.
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"90s"`

	// Response cache TTL; zero disables caching.
	ResponseCacheTTL time.Duration `env:"RESPONSE_CACHE_TTL" envDefault:"10m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConfig holds settings for the Gemini generateContent API.
type GeminiConfig struct {
	HTTPClientConfig
	APIKey           string               `env:"API_KEY"`
	Model            string               `env:"MODEL" envDefault:"gemini-2.0-flash"`
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/v1beta/models/%s:generateContent"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// EmbeddingConfig holds settings for the embedding provider.
type EmbeddingConfig struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL" envDefault:"text-embedding-3-small"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// CurrencyConfig holds settings for the exchange-rate API.
type CurrencyConfig struct {
	HTTPClientConfig
	RatesEndpoint string               `env:"RATES_ENDPOINT" envDefault:"/v4/latest/"`
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// IndexConfig controls offline index building and storage.
type IndexConfig struct {
	Path             string `env:"PATH" envDefault:"./index"`
	KnowledgeBaseDir string `env:"KNOWLEDGE_BASE_DIR" envDefault:"./knowledge_base"`
	ChunkSize        int    `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap     int    `env:"CHUNK_OVERLAP" envDefault:"150"`
}

// RetrievalConfig controls request-time similarity search.
type RetrievalConfig struct {
	TopK      int     `env:"TOP_K" envDefault:"5"`
	Threshold float64 `env:"RELEVANCE_THRESHOLD" envDefault:"0.4"`
}

// Default upstream hosts, used when the service URLs are not configured.
const (
	defaultGeminiURL   = "https://generativelanguage.googleapis.com"
	defaultCurrencyURL = "https://api.exchangerate-api.com"
)

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills per-service base URLs. The shared HTTPClientConfig
// tag cannot carry a different envDefault per service, so this runs after
// env parsing.
func applyDefaults(cfg *Config) {
	if cfg.GeminiCfg.Url == "" {
		cfg.GeminiCfg.Url = defaultGeminiURL
	}
	if cfg.CurrencyCfg.Url == "" {
		cfg.CurrencyCfg.Url = defaultCurrencyURL
	}
}

func validateConfig(cfg *Config) error {
	if cfg.IndexCfg.ChunkSize < 1 {
		return fmt.Errorf("INDEX_CHUNK_SIZE must be positive, got %d", cfg.IndexCfg.ChunkSize)
	}
	if cfg.IndexCfg.ChunkOverlap < 0 || cfg.IndexCfg.ChunkOverlap >= cfg.IndexCfg.ChunkSize {
		return fmt.Errorf("INDEX_CHUNK_OVERLAP must be in [0, chunk size), got %d", cfg.IndexCfg.ChunkOverlap)
	}
	if cfg.RetrievalCfg.TopK < 1 || cfg.RetrievalCfg.TopK > 100 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be between 1 and 100, got %d", cfg.RetrievalCfg.TopK)
	}
	if cfg.RetrievalCfg.Threshold < -1 || cfg.RetrievalCfg.Threshold > 1 {
		return fmt.Errorf("RETRIEVAL_RELEVANCE_THRESHOLD must be a cosine similarity in [-1, 1], got %f", cfg.RetrievalCfg.Threshold)
	}
	if !cfg.EnableMocks && cfg.GeminiCfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when mocks are disabled")
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
