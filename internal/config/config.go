package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE"`
	Port       uint16 `env:"PORT" envDefault:"8080"`
	Secret     string `env:"SECRET,notEmpty"`

	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`

	RabbitmqURL                string `env:"RABBITMQ_URL,notEmpty"`
	RabbitmqPasswordResetQueue string `env:"RABBITMQ_PASSWORD_RESET_QUEUE" envDefault:"password-reset-emails"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"12"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	NotificationTimeout        time.Duration `env:"NOTIFICATION_TIMEOUT" envDefault:"5s"`
	SessionValidDuration       time.Duration `env:"SESSION_VALID_DURATION" envDefault:"720h"`
	DefaultTaxRateBasisPoints  uint16        `env:"DEFAULT_TAX_RATE_BASIS_POINTS" envDefault:"1000"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	AwsConfig

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

// AwsConfig is the part of Config the SES tooling in cmd/aws needs.
type AwsConfig struct {
	AwsRegion                     string  `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER" envDefault:"no-reply@proposalai.com"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"proposalai-password-reset"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/reset-password"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAws reads only the AWS settings, so SES tooling runs without the
// database and broker variables set.
func LoadAws() (*AwsConfig, error) {
	cfg := &AwsConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AwsConfig) validate() error {
	if c.AwsEmailPasswordResetBaseUrl.Scheme == "" || c.AwsEmailPasswordResetBaseUrl.Host == "" {
		return fmt.Errorf("AWS_EMAIL_PASSWORD_RESET_BASE_URL must be an absolute URL")
	}
	return nil
}

func (c *Config) validate() error {
	if c.BcryptHasherCost < 4 || c.BcryptHasherCost > 31 {
		return fmt.Errorf("invalid BCRYPT_HASHER_COST value: %d", c.BcryptHasherCost)
	}
	if c.PasswordResetValidDuration <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if c.NotificationTimeout <= 0 {
		return fmt.Errorf("NOTIFICATION_TIMEOUT must be positive")
	}
	if c.SessionValidDuration <= 0 {
		return fmt.Errorf("SESSION_VALID_DURATION must be positive")
	}
	if c.DefaultTaxRateBasisPoints > 10000 {
		return fmt.Errorf("DEFAULT_TAX_RATE_BASIS_POINTS must not exceed 10000")
	}
	return c.AwsConfig.validate()
}
