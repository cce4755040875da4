package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort         string
	ServerHost         string
	CORSAllowedOrigins []string
	LogLevel           string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	Auth    AuthConfig
	Storage StorageConfig
}

// AuthConfig describes the hosted identity provider tenant
type AuthConfig struct {
	Domain          string
	Audience        string
	ClientID        string
	ClientSecret    string
	CallbackURL     string
	LogoutReturnURL string

	// SigningSecret switches token validation to HS256. Never set in production.
	SigningSecret string
}

// IssuerURL returns the token issuer for the tenant, always with a trailing slash
func (a AuthConfig) IssuerURL() string {
	domain := strings.TrimSuffix(a.Domain, "/")
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return domain + "/"
	}
	return "https://" + domain + "/"
}

// StorageConfig holds object storage settings
type StorageConfig struct {
	Region             string
	Endpoint           string
	PublicBaseURL      string
	RecipeImagesBucket string
	UserAvatarsBucket  string
}

const (
	defaultServerPort   = "8080"
	defaultRedisURL     = "redis://localhost:6379/0"
	defaultCORSOrigin   = "http://localhost:5173"
	defaultRecipeBucket = "recipe-images"
	defaultAvatarBucket = "user-avatars"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development:
		// a missing .env is fine, the real environment still applies
		_ = godotenv.Load()
	case Test, CI, Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := load(env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(env Environment) *Config {
	cfg := &Config{
		Env:         env,
		ServerPort:  lookup("SERVER_PORT", defaultServerPort),
		ServerHost:  lookup("SERVER_HOST", ""),
		LogLevel:    lookup("LOG_LEVEL", "info"),
		DatabaseURL: lookup("DATABASE_URL", ""),
		RedisURL:    lookup("REDIS_URL", defaultRedisURL),
		Auth: AuthConfig{
			Domain:          lookup("AUTH_DOMAIN", ""),
			Audience:        lookup("AUTH_AUDIENCE", ""),
			ClientID:        lookup("AUTH_CLIENT_ID", ""),
			ClientSecret:    lookup("AUTH_CLIENT_SECRET", ""),
			CallbackURL:     lookup("AUTH_CALLBACK_URL", "http://localhost:8080/api/v1/auth/callback"),
			LogoutReturnURL: lookup("AUTH_LOGOUT_RETURN_URL", defaultCORSOrigin),
			SigningSecret:   lookup("AUTH_SIGNING_SECRET", ""),
		},
		Storage: StorageConfig{
			Region:             lookup("AWS_REGION", "us-east-1"),
			Endpoint:           lookup("STORAGE_ENDPOINT", ""),
			PublicBaseURL:      strings.TrimSuffix(lookup("STORAGE_PUBLIC_URL", ""), "/"),
			RecipeImagesBucket: lookup("RECIPE_IMAGES_BUCKET", defaultRecipeBucket),
			UserAvatarsBucket:  lookup("USER_AVATARS_BUCKET", defaultAvatarBucket),
		},
	}

	for _, origin := range strings.Split(lookup("CORS_ALLOWED_ORIGINS", defaultCORSOrigin), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup prefers the environment, then a Docker secret with the lowercased name
func lookup(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
