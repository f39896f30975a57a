// Package config loads WorkSafe configuration from environment variables,
// with an optional YAML file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// QuizPassPolicy selects the persistence behavior on a passed quiz.
type QuizPassPolicy string

const (
	// PassPolicyAppend inserts a new assignment row for every passing
	// attempt, preserving attempt history. This is the default.
	PassPolicyAppend QuizPassPolicy = "append"

	// PassPolicyUpsert keeps a single canonical row per
	// (employee, topic, quiz) and refreshes it on each pass.
	PassPolicyUpsert QuizPassPolicy = "upsert"
)

// Config holds all runtime configuration for the WorkSafe server.
type Config struct {
	Server struct {
		Port            string        `yaml:"port"             env:"PORT"                   env-default:"8080"`
		Environment     string        `yaml:"environment"      env:"ENV"                    env-default:"development"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	} `yaml:"server"`

	Database struct {
		URL      string `yaml:"url"       env:"DATABASE_URL" env-required:"true"`
		MaxConns int32  `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"25"`
		MinConns int32  `yaml:"min_conns" env:"DATABASE_MIN_CONNS" env-default:"5"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret      string        `yaml:"jwt_secret"       env:"JWT_SECRET" env-required:"true"`
		AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"JWT_ACCESS_EXPIRY" env-default:"8h"`
	} `yaml:"auth"`

	Training struct {
		// QuizPassPolicy controls whether a passed quiz appends a new
		// assignment row or upserts a canonical one.
		QuizPassPolicy QuizPassPolicy `yaml:"quiz_pass_policy" env:"QUIZ_PASS_POLICY" env-default:"append"`
	} `yaml:"training"`
}

// Load reads configuration with priority ENV > YAML file > defaults. The
// file path comes from CONFIG_PATH (fallback ./config.yaml); a missing
// implicit file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Training.QuizPassPolicy {
	case PassPolicyAppend, PassPolicyUpsert:
	default:
		return fmt.Errorf("unknown quiz pass policy %q", c.Training.QuizPassPolicy)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database min_conns %d exceeds max_conns %d", c.Database.MinConns, c.Database.MaxConns)
	}
	return nil
}
