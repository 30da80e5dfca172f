package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	SupabaseURL     string
	SupabaseAnonKey string
	MongoDBURI      string
	MongoDBPassword string
	Environment     string
	LogLevel        string

	// External collaborators
	CheckoutURL  string // payment processor session endpoint
	NotifyURL    string // email server booking notifications
	AssistantURL string // conversational assistant webhook
	FrontendURL  string

	// Minor currency units charged per credit at checkout
	CentsPerCredit int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		CheckoutURL:     os.Getenv("CHECKOUT_SESSION_URL"),
		NotifyURL:       os.Getenv("BOOKING_NOTIFY_URL"),
		AssistantURL:    os.Getenv("ASSISTANT_WEBHOOK_URL"),
		FrontendURL:     getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	rate := getEnvWithDefault("CENTS_PER_CREDIT", "100")
	centsPerCredit, err := strconv.Atoi(rate)
	if err != nil || centsPerCredit <= 0 {
		return nil, fmt.Errorf("CENTS_PER_CREDIT must be a positive integer, got %q", rate)
	}
	cfg.CentsPerCredit = centsPerCredit

	// Validate required fields
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.MongoDBPassword == "" {
		return nil, fmt.Errorf("MONGODB_PASSWORD is required")
	}
	if cfg.CheckoutURL == "" {
		return nil, fmt.Errorf("CHECKOUT_SESSION_URL is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
