package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var (
	ErrUnknownDriver     = errors.New("unknown store driver")
	ErrResetInProduction = errors.New("RESET_DB must not be enabled in production")
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	Env    string `env:"ENV" envDefault:"development"`
	Driver string `env:"STORE_DRIVER" envDefault:"mysql"`

	DatabaseDSN   string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/showtrack?parseTime=true"`
	MongoURL      string `env:"MONGO_URL" envDefault:"mongodb://localhost/users"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"users"`

	// ResetDB wipes every user record at startup. Test environments only.
	ResetDB bool `env:"RESET_DB" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"showtrack-api"`
}

// Load reads the configuration from the process environment.
// A .env file, if any, must be loaded by the caller beforehand.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}

	if c.ResetDB && c.Env == "production" {
		return ErrResetInProduction
	}

	return nil
}

// TracingEnabled reports whether an OTLP collector endpoint was configured.
func (c Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}
