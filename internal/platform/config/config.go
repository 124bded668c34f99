package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"estatehub"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"estatehub"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"1h"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"estatehub.events"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"465"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASS"`
	SMTPSender   string `envconfig:"SMTP_SENDER"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	CORSOrigins       []string `envconfig:"CORS_ORIGINS"`
	CookieSecure      bool     `envconfig:"COOKIE_SECURE" default:"false"`
	FanoutConcurrency int      `envconfig:"FANOUT_CONCURRENCY" default:"4"`
}

// Load reads an optional .env file, then binds the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if path := strings.TrimSpace(os.Getenv("ENV_FILE")); path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_DRIVER=postgres")
		}
	case StorageMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required when STORAGE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.FanoutConcurrency < 1 {
		return errors.New("FANOUT_CONCURRENCY must be at least 1")
	}
	return nil
}

// MailEnabled reports whether SMTP settings are complete enough to send mail.
func (c Config) MailEnabled() bool {
	return strings.TrimSpace(c.SMTPHost) != "" && strings.TrimSpace(c.SMTPSender) != ""
}
