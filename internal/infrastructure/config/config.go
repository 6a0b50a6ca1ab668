package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment configuration. The JWT secret default is the
// fallback the deployment has always shipped with; override it in any
// environment that matters.
type Config struct {
	Port           string `env:"PORT,             default=5000"`
	Env            string `env:"ENV,              default=development"`
	LogLevel       string `env:"LOG_LEVEL,        default=info"`
	JWTSecret      string `env:"JWT_SECRET,       default=sthaniya-secret-key-2024"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	UploadDir      string `env:"UPLOAD_DIR,       default=uploads"`
	// CodeStore selects the verification-code backend: "memory" (single
	// instance only) or "redis".
	CodeStore string `env:"CODE_STORE, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sthaniya"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	From     string `env:"EMAIL_FROM"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	return &cfg
}
