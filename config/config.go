// Package config loads the server configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const productionEnv = "production"

type Config struct {
	// Env switches cookie security and gin release mode when set to "production".
	Env     string `env:"ENV" envDefault:"development"`
	Server  ServerConfig
	Mongo   MongoConfig
	Session SessionConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type MongoConfig struct {
	URL      string `env:"MONGODB_URL,required"`
	Database string `env:"DATABASE_NAME,required"`
	// Transactions wraps review creation and movie linking in one transaction.
	// Requires a replica set or Atlas cluster.
	Transactions bool `env:"MONGODB_TRANSACTIONS" envDefault:"false"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET,required"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"SESSION"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
}

type LogConfig struct {
	Path  string `env:"LOG_PATH" envDefault:"logs/"`
	Debug bool   `env:"LOG_DEBUG" envDefault:"false"`
}

func (c *Config) IsProduction() bool {
	return c.Env == productionEnv
}

// Load reads .env (if present) into the process environment and parses Config from it.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: unable to find .env")
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	origins := cfg.Server.AllowedOrigins[:0]
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.Server.AllowedOrigins = origins

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("ALLOWED_ORIGINS must name at least one origin"))
	}
	for _, origin := range c.Server.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("ALLOWED_ORIGINS entry %q must start with http:// or https://", origin))
		}
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	return errors.Join(errs...)
}
