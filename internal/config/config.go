package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Bucket"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"bucket"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:""`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"720h"`
	}

	Rates struct {
		URL     string        `envconfig:"RATES_API_URL" default:"https://v6.exchangerate-api.com/v6"`
		Key     string        `envconfig:"RATES_API_KEY"`
		TTL     time.Duration `envconfig:"RATES_TTL" default:"12h"`
		Timeout time.Duration `envconfig:"RATES_TIMEOUT" default:"10s"`
	}

	Sync struct {
		// Empty URL disables remote delete propagation.
		BrokerURL string `envconfig:"SYNC_BROKER_URL"`
		Exchange  string `envconfig:"SYNC_EXCHANGE" default:"bucket"`
		Queue     string `envconfig:"SYNC_QUEUE" default:"bucket.deletes"`
	}

	Insights struct {
		URL     string        `envconfig:"INSIGHTS_API_URL" default:"https://api.openai.com/v1/chat/completions"`
		Key     string        `envconfig:"INSIGHTS_API_KEY"`
		Model   string        `envconfig:"INSIGHTS_MODEL" default:"gpt-3.5-turbo"`
		Timeout time.Duration `envconfig:"INSIGHTS_TIMEOUT" default:"60s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
