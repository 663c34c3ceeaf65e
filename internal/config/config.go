package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type MailTransport string

const (
	MailTransportSES  MailTransport = "ses"
	MailTransportSMTP MailTransport = "smtp"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`
	Port  uint `env:"PORT" envDefault:"8000"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL"`

	FrontendURL url.URL `env:"FRONTEND_URL,required"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	SessionCredentialTTL       time.Duration `env:"SESSION_CREDENTIAL_TTL" envDefault:"24h"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	HideAccountExistence       bool          `env:"HIDE_ACCOUNT_EXISTENCE" envDefault:"false"`
	ProfileCacheTTL            time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"5m"`

	MailTransport    MailTransport `env:"MAIL_TRANSPORT" envDefault:"ses"`
	MailQueueEnabled bool          `env:"MAIL_QUEUE_ENABLED" envDefault:"false"`
	MailQueue        string        `env:"MAIL_QUEUE" envDefault:"email-ready-for-sending"`
	MailSender       string        `env:"MAIL_SENDER,required"`

	SmtpHost     string `env:"SMTP_HOST"`
	SmtpPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUsername string `env:"SMTP_USERNAME"`
	SmtpPassword string `env:"SMTP_PASSWORD"`

	AwsRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	S3Bucket    string  `env:"S3_BUCKET,required"`
	S3Endpoint  string  `env:"S3_ENDPOINT"`
	S3PublicURL url.URL `env:"S3_PUBLIC_URL"`

	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("SECRET must be at least 32 characters long")
	}
	if c.FrontendURL.Scheme == "" || c.FrontendURL.Host == "" {
		return fmt.Errorf("FRONTEND_URL must be an absolute URL")
	}
	switch c.MailTransport {
	case MailTransportSES:
	case MailTransportSMTP:
		if c.SmtpHost == "" {
			return fmt.Errorf("SMTP_HOST must be set for the smtp mail transport")
		}
	default:
		return fmt.Errorf("invalid MAIL_TRANSPORT value: %q", c.MailTransport)
	}
	if c.MailQueueEnabled && c.RabbitmqURL == "" {
		return fmt.Errorf("RABBITMQ_URL must be set when MAIL_QUEUE_ENABLED is true")
	}
	return nil
}

// AllowedOrigins returns the origin of the frontend, the only one CORS lets through.
func (c *Config) AllowedOrigins() []string {
	return []string{fmt.Sprintf("%s://%s", c.FrontendURL.Scheme, c.FrontendURL.Host)}
}

// ImagePublicURL is the base URL uploaded images are served from.
func (c *Config) ImagePublicURL() url.URL {
	if c.S3PublicURL.Host != "" {
		return c.S3PublicURL
	}
	if c.S3Endpoint != "" {
		u, err := url.Parse(c.S3Endpoint)
		if err == nil {
			return *u.JoinPath(c.S3Bucket)
		}
	}
	return url.URL{Scheme: "https", Host: fmt.Sprintf("%s.s3.%s.amazonaws.com", c.S3Bucket, c.AwsRegion)}
}
