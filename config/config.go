package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderImageKit   = "imagekit"
	ProviderCloudinary = "cloudinary"
)

type Config struct {
	Port            string
	DatabaseURL     string
	LogLevel        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// JWT_SECRET; write routes are open when empty.
	AuthSecret string

	ImageProvider  string
	PrivateKey     string
	PublicKey      string
	URLEndpoint    string
	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string
	UploadTags     []string
	UploadFolder   string
	MaxUploadBytes int64
}

// Load reads .env (if any) and the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Info("No .env file found, using default env")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AuthSecret:     os.Getenv("JWT_SECRET"),
		ImageProvider:  strings.ToLower(getEnv("IMAGE_PROVIDER", ProviderImageKit)),
		PrivateKey:     os.Getenv("PRIVATE_KEY"),
		PublicKey:      os.Getenv("PUBLIC_KEY"),
		URLEndpoint:    os.Getenv("URL_ENDPOINT"),
		CloudName:      os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		UploadTags:     splitList(getEnv("UPLOAD_TAGS", "image-upload")),
		UploadFolder:   os.Getenv("UPLOAD_FOLDER"),
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = maxMB << 20

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected image provider has its credentials.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}

	switch c.ImageProvider {
	case ProviderImageKit:
		if c.PrivateKey == "" || c.PublicKey == "" || c.URLEndpoint == "" {
			return errors.New("PRIVATE_KEY, PUBLIC_KEY and URL_ENDPOINT are required for imagekit")
		}
	case ProviderCloudinary:
		if c.CloudName == "" || c.CloudAPIKey == "" || c.CloudAPISecret == "" {
			return errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for cloudinary")
		}
	default:
		return fmt.Errorf("unknown IMAGE_PROVIDER %q", c.ImageProvider)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
