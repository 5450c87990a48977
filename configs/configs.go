package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting the application reads. Values come
// from the environment; a .env file is loaded first when present.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"3000"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"gatherlink"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	AWSRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"S3_BUCKET_NAME"`
	SESFromAddress string `env:"SES_FROM_ADDRESS"`
	SMSSenderID    string `env:"SMS_SENDER_ID" envDefault:"GATHERLINK"`

	SystemUserEmail    string `env:"SYSTEM_USER_EMAIL" envDefault:"admin@gather.link"`
	SystemUserPassword string `env:"SYSTEM_USER_PASSWORD" envDefault:"changeme"`
}

// Load reads the .env file (if any) and parses the environment into a
// Config. A missing .env is not an error; malformed values are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN builds the Postgres connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
