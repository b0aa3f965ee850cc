// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PostgresDSN string `env:"POSTGRES_DSN,required"`

	// Telegram MTProto client
	TGAPIID         int    `env:"TG_API_ID,required"`
	TGAPIHash       string `env:"TG_API_HASH,required"`
	TGPhone         string `env:"TG_PHONE"`
	TG2FAPassword   string `env:"TG_2FA_PASSWORD"`
	TGSessionPath   string `env:"TG_SESSION_PATH" envDefault:"./tg.session"`
	ChannelUsername string `env:"CHANNEL_USERNAME,required"`

	ReaderFetchLimit    int           `env:"READER_FETCH_LIMIT" envDefault:"50"`
	ReaderPollInterval  time.Duration `env:"READER_POLL_INTERVAL" envDefault:"60s"`
	RateLimitRPS        int           `env:"RATE_LIMIT_RPS" envDefault:"1"`
	DownloadConcurrency int           `env:"DOWNLOAD_CONCURRENCY" envDefault:"3"`
	DownloadDir         string        `env:"DOWNLOAD_DIR" envDefault:"./downloads"`

	// Archive layout
	ArchiveDir     string `env:"ARCHIVE_DIR" envDefault:"./archive"`
	OrganizeDryRun bool   `env:"ORGANIZE_DRY_RUN" envDefault:"false"`

	// Resolution anchors
	HomeCityFa          string `env:"HOME_CITY_FA" envDefault:"تهران"`
	HomeCityEn          string `env:"HOME_CITY_EN" envDefault:"Tehran"`
	DefaultJalaliYear   int    `env:"DEFAULT_JALALI_YEAR" envDefault:"1404"`
	CaptionWindowRadius int    `env:"CAPTION_WINDOW_RADIUS" envDefault:"40"`

	// LLM providers
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIModel      string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnthropicAPIKey  string        `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string        `env:"ANTHROPIC_MODEL" envDefault:"claude-haiku-4.5"`
	OpenRouterAPIKey string        `env:"OPENROUTER_API_KEY"`
	OpenRouterModel  string        `env:"OPENROUTER_MODEL" envDefault:"mistralai/mistral-7b-instruct"`
	LLMTimeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	// Pipeline worker
	WorkerBatchSize    int           `env:"WORKER_BATCH_SIZE" envDefault:"10"`
	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"10s"`

	HealthPort int `env:"HEALTH_PORT" envDefault:"8080"`

	// Gazetteer ingestion
	GazetteerMinPopulation int64 `env:"GAZETTEER_MIN_POPULATION" envDefault:"5000"`
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
