package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// PageSize is the fixed order-history page length.
	PageSize int `env:"PAGE_SIZE, default=10"`

	DB      DBConfig
	Redis   RedisConfig
	Factory FactoryConfig
	Admin   AdminConfig
}

type DBConfig struct {
	Host           string        `env:"DB_HOST,            default=localhost"`
	Port           string        `env:"DB_PORT,            default=3306"`
	User           string        `env:"DB_USER,            default=root"`
	Password       string        `env:"DB_PASSWORD"`
	Database       string        `env:"DB_NAME,            default=pizza"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type FactoryConfig struct {
	URL    string `env:"FACTORY_URL, default=https://pizza-factory.cs329.click"`
	APIKey string `env:"FACTORY_API_KEY"`
}

// AdminConfig is the account seeded exactly once, when the database is first
// created.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME,     default=admin"`
	Email    string `env:"ADMIN_EMAIL,    default=a@jwt.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
