package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// SeedUsers creates the initial directory records when the store is empty.
	SeedUsers bool `env:"SEED_USERS, default=true"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	Upstream UpstreamConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_directory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME,   default=directory_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	KeyPrefix    string        `env:"SESSION_REDIS_PREFIX,  default=directory:session:"`
}

// UpstreamConfig points at the external escalation-policy API.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://api.pagerduty.com"`
	Token   string        `env:"UPSTREAM_API_TOKEN"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
