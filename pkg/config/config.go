package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "NEONCLOUDS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App         AppConfig
	CORS        CORSConfig
	Session     SessionConfig
	Gemini      GeminiConfig
	Redis       RedisConfig
	AIRateLimit AIRateLimitConfig
	Studio      StudioConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NEONCLOUDS_APP_ENV" default:"dev"`
	Port         string `envconfig:"NEONCLOUDS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NEONCLOUDS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEONCLOUDS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"NEONCLOUDS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"NEONCLOUDS_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"NEONCLOUDS_SESSION_SWEEP_INTERVAL" default:"5m"`
	MaxSessions   int           `envconfig:"NEONCLOUDS_SESSION_MAX" default:"10000"`
}

type GeminiConfig struct {
	APIKey      string        `envconfig:"NEONCLOUDS_GEMINI_API_KEY"`
	ChatModel   string        `envconfig:"NEONCLOUDS_GEMINI_CHAT_MODEL" default:"gemini-2.5-flash"`
	ImageModel  string        `envconfig:"NEONCLOUDS_GEMINI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	CallTimeout time.Duration `envconfig:"NEONCLOUDS_GEMINI_CALL_TIMEOUT" default:"60s"`
}

// Enabled reports whether a credential was provided. Without one both
// collaborators degrade to their fallback behavior instead of halting.
func (g GeminiConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"NEONCLOUDS_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"NEONCLOUDS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEONCLOUDS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEONCLOUDS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured. Redis only
// backs AI-endpoint rate limiting, so it stays optional.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AIRateLimitConfig struct {
	Window       time.Duration `envconfig:"NEONCLOUDS_AI_RATE_LIMIT_WINDOW" default:"1m"`
	SessionLimit int           `envconfig:"NEONCLOUDS_AI_RATE_LIMIT_SESSION_LIMIT" default:"10"`
	IPLimit      int           `envconfig:"NEONCLOUDS_AI_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type StudioConfig struct {
	MaxUploadMB  int           `envconfig:"NEONCLOUDS_STUDIO_MAX_UPLOAD_MB" default:"8"`
	FetchTimeout time.Duration `envconfig:"NEONCLOUDS_STUDIO_FETCH_TIMEOUT" default:"15s"`
}
