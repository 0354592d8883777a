package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"invento"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`

	EmailProvider      string `env:"EMAIL_PROVIDER" envDefault:"noop"`
	EmailUser          string `env:"EMAIL_USER"`
	EmailPassword      string `env:"EMAIL_PASSWORD"`
	EmailFromName      string `env:"EMAIL_FROM_NAME" envDefault:"INVENTO 2026"`
	SMTPHost           string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort           int    `env:"SMTP_PORT" envDefault:"587"`
	AWSRegion          string `env:"AWS_REGION" envDefault:"ap-south-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"12h"`

	RabbitURL string `env:"RABBITMQ_URL"`

	AllowedOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	RegisterRateLimit  float64       `env:"REGISTER_RATE_LIMIT" envDefault:"1"`
	RegisterRateBurst  int           `env:"REGISTER_RATE_BURST" envDefault:"5"`
	TrustedProxyHops   int           `env:"TRUSTED_PROXY_HOPS" envDefault:"0"`
	AdminEmail         string        `env:"ADMIN_EMAIL"`
	AdminPassword      string        `env:"ADMIN_PASSWORD"`
	ContingentKeysFile string        `env:"CONTINGENT_KEYS_FILE"`
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from environment variables.
// Outside production it first tries a .env file; a missing file is not an error
// because deployed environments rely on real environment variables.
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the API server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}
	if c.EmailProvider == "smtp" && (c.EmailUser == "" || c.EmailPassword == "") {
		return fmt.Errorf("EMAIL_USER and EMAIL_PASSWORD are required for the smtp provider")
	}
	return nil
}
