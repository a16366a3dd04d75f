package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Address    string `env:"ADDRESS" envDefault:"0.0.0.0:9090"`
	// Secret is appended to passwords before hashing.
	Secret string `env:"SECRET,required"`

	// When POSTGRESQL_URL is empty the service falls back to the
	// flat-file store at USERS_FILE_PATH.
	PostgresqlURL string `env:"POSTGRESQL_URL"`
	UsersFilePath string `env:"USERS_FILE_PATH" envDefault:"users.json"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/account/reset-password"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// SES delivery is used only when both values are set; otherwise the
	// reset link is logged.
	PasswordResetEmailFrom     string `env:"PASSWORD_RESET_EMAIL_FROM"`
	PasswordResetEmailTemplate string `env:"PASSWORD_RESET_EMAIL_TEMPLATE"`

	AwsRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
