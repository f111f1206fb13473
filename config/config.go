package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	Port           int    `koanf:"port"`
	Environment    string `koanf:"environment"`
	JWTSecret      string `koanf:"jwt_secret"`
	AIServiceURL   string `koanf:"ai_service_url"`
	AIServiceToken string `koanf:"ai_service_token"`
	AWSRegion      string `koanf:"aws_region"`
	S3BucketName   string `koanf:"s3_bucket_name"`
}

// Load reads configuration from environment variables. Required variables
// without a usable default cause an error so the server fails at startup
// rather than on the first request that needs them.
func Load() (*Config, error) {
	cfg := &Config{}

	k := koanf.New(".")

	// PORT -> port, AI_SERVICE_URL -> ai_service_url, ...
	provider := env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Unset and empty variables fall back to defaults.
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "development"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if strings.TrimSpace(c.JWTSecret) == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if strings.TrimSpace(c.AIServiceURL) == "" {
		missing = append(missing, "AI_SERVICE_URL")
	}
	if strings.TrimSpace(c.AIServiceToken) == "" {
		missing = append(missing, "AI_SERVICE_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.Environment {
	case "development", "production", "test":
	default:
		return errors.New("ENVIRONMENT must be one of: development, production, test")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
