package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	ProcessingTimeout  time.Duration
	MaxRequestBodySize int64

	// NASA image acquisition
	NASABaseURL    string
	NASAAPIKey     string
	EPICImageCount int

	// Optional Azure blob image source
	AzureAccountName string
	AzureAccountKey  string

	// Where downloaded and processed images are saved
	OutputDirectory string

	// Processing limits
	MaxImagePixels         int
	MaxThresholdIterations int
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureConfigured reports whether blob storage credentials were provided.
func (c *Config) AzureConfigured() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		ProcessingTimeout:  parseDurationOrDefault("PROCESSING_TIMEOUT", 60*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB

		NASABaseURL:    getEnvOrDefault("NASA_BASE_URL", "https://epic.gsfc.nasa.gov/"),
		NASAAPIKey:     getEnvOrDefault("NASA_API_KEY", "DEMO_KEY"),
		EPICImageCount: int(parseIntOrDefault("EPIC_IMAGE_COUNT", 1)),

		AzureAccountName: os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:  os.Getenv("AZURE_ACCOUNT_KEY"),

		OutputDirectory: getEnvOrDefault("OUTPUT_DIRECTORY", "images"),

		MaxImagePixels:         int(parseIntOrDefault("MAX_IMAGE_PIXELS", 64*1024*1024)),
		MaxThresholdIterations: int(parseIntOrDefault("MAX_THRESHOLD_ITERATIONS", 100)),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.ProcessingTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, processing=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.ProcessingTimeout)
	}
	if cfg.EPICImageCount < 1 {
		return nil, fmt.Errorf("EPIC_IMAGE_COUNT must be a positive integer (got %d)", cfg.EPICImageCount)
	}
	if cfg.MaxImagePixels <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_PIXELS must be > 0 (got %d)", cfg.MaxImagePixels)
	}
	if cfg.MaxThresholdIterations <= 0 {
		return nil, fmt.Errorf("MAX_THRESHOLD_ITERATIONS must be > 0 (got %d)", cfg.MaxThresholdIterations)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
