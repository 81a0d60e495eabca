package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Update  UpdateConfig

	PasswordHash PasswordHashConfig
	PinHash      PinHashConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hotel_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	// TTL is the sliding session window: refreshed to this duration on
	// every successful authenticated request.
	TTL          time.Duration `env:"SESSION_TTL,    default=8h"`
	CookieName   string        `env:"SESSION_COOKIE, default=hotel_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=true"`
}

// PasswordHashConfig carries the Argon2id cost parameters for passwords,
// tuned for the web login path.
type PasswordHashConfig struct {
	Memory      uint32 `env:"PASSWORD_HASH_MEMORY,      default=65536"`
	Time        uint32 `env:"PASSWORD_HASH_TIME,        default=3"`
	Parallelism uint8  `env:"PASSWORD_HASH_PARALLELISM, default=2"`
}

// PinHashConfig carries the Argon2id cost parameters for PINs. Deliberately
// cheaper than the password profile: PINs guard latency-sensitive terminal
// flows. Keep the relative ordering when retuning either profile.
type PinHashConfig struct {
	Memory      uint32 `env:"PIN_HASH_MEMORY,      default=8192"`
	Time        uint32 `env:"PIN_HASH_TIME,        default=2"`
	Parallelism uint8  `env:"PIN_HASH_PARALLELISM, default=1"`
}

type UpdateConfig struct {
	// RepoPath is the single pre-approved website checkout the update
	// trigger may touch. Empty disables the endpoints.
	RepoPath string        `env:"UPDATE_REPO_PATH"`
	Timeout  time.Duration `env:"UPDATE_TIMEOUT, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
