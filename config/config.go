package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	Env        string
	LogLevel   string

	// HTTP client
	HTTPTimeout    time.Duration
	RequestsPerSec float64
	RequestBurst   int

	// Payment processor (public key only; secrets live server-side)
	PaymentPublicKey string
	PaymentScriptURL string

	// Durable session storage
	SessionFile string

	// Dashboard snapshot cache
	DashboardCacheTTL time.Duration

	// Image upload processing
	MaxImageWidth int
	ImageQuality  int

	// Display-only mirror of the server's tax rate
	TaxRate float64
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev).
		// We don't error here because in CI/prod the process env is the source.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		Env:        getEnv("ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 15*time.Second),
		RequestsPerSec: getFloatEnv("CLIENT_REQUESTS_PER_SEC", 25),
		RequestBurst:   getIntEnv("CLIENT_REQUEST_BURST", 50),

		PaymentPublicKey: getEnv("PAYMENT_PUBLIC_KEY", ""),
		PaymentScriptURL: getEnv("PAYMENT_SCRIPT_URL", "https://checkout.razorpay.com/v1/checkout.js"),

		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),

		// 5m snapshot TTL matches the server's stats cache granularity
		DashboardCacheTTL: getDurationEnv("DASHBOARD_CACHE_TTL", 5*time.Minute),

		MaxImageWidth: getIntEnv("MAX_IMAGE_WIDTH", 2000),
		ImageQuality:  getIntEnv("IMAGE_QUALITY", 85),

		TaxRate: getFloatEnv("TAX_RATE", 0.18),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.APIBaseURL == "" {
		log.Fatal("CRITICAL: API_BASE_URL environment variable is required")
	}
	if c.PaymentPublicKey == "" {
		log.Println("WARNING: PAYMENT_PUBLIC_KEY not set; checkout will fail at the processor stage")
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wcommerce-session.json"
	}
	return filepath.Join(dir, "wcommerce", "session.json")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
