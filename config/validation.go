package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required  []string
	Forbidden []string
}

var (
	baseRequired = []string{
		"DATABASE_URL",
		"AUTH_DOMAIN",
		"AUTH_AUDIENCE",
		"AUTH_CLIENT_ID",
	}

	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {Required: baseRequired},
		Test:        {Required: baseRequired},
		CI:          {Required: baseRequired},
		Production: {
			Required:  baseRequired,
			Forbidden: []string{"AUTH_SIGNING_SECRET"},
		},
	}
)

func (c *Config) value(name string) string {
	switch name {
	case "DATABASE_URL":
		return c.DatabaseURL
	case "AUTH_DOMAIN":
		return c.Auth.Domain
	case "AUTH_AUDIENCE":
		return c.Auth.Audience
	case "AUTH_CLIENT_ID":
		return c.Auth.ClientID
	case "AUTH_SIGNING_SECRET":
		return c.Auth.SigningSecret
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	reqs, ok := requirements[cfg.Env]
	if !ok {
		return ValidationError{Field: "ENV", Message: fmt.Sprintf("unknown environment %q", cfg.Env)}
	}

	var errs []error

	for _, name := range reqs.Required {
		if cfg.value(name) == "" {
			errs = append(errs, ValidationError{Field: name, Message: "is required"})
		}
	}
	for _, name := range reqs.Forbidden {
		if cfg.value(name) != "" {
			errs = append(errs, ValidationError{Field: name, Message: fmt.Sprintf("must not be set in %s", cfg.Env)})
		}
	}

	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "must use the redis:// or rediss:// scheme"})
	}
	if cfg.Storage.Endpoint != "" {
		if _, err := url.ParseRequestURI(cfg.Storage.Endpoint); err != nil {
			errs = append(errs, ValidationError{Field: "STORAGE_ENDPOINT", Message: "must be an absolute URL"})
		}
	}

	return errors.Join(errs...)
}
