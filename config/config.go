package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"pointdesk/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	HTTPAddr string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Permission configuration
	OperatorIDs []int64 // staff IDs allowed to approve/reject and run settlement
	AdminIDs    []int64 // staff IDs with full access

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables the notifier

	// Settlement configuration
	TeamAliasTTL time.Duration // how long cached team aliases stay fresh

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		TeamAliasTTL: 10 * time.Minute,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	config.OperatorIDs = parseIDList(os.Getenv("OPERATOR_IDS"))
	config.AdminIDs = parseIDList(os.Getenv("ADMIN_IDS"))

	if ttl := os.Getenv("TEAM_ALIAS_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TEAM_ALIAS_TTL: %w", err)
		}
		config.TeamAliasTTL = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// parseIDList parses a comma-separated list of int64 IDs
func parseIDList(raw string) []int64 {
	var ids []int64
	for _, idStr := range strings.Split(raw, ",") {
		idStr = strings.TrimSpace(idStr)
		if idStr == "" {
			continue
		}
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:  "test",
		HTTPAddr:     ":0",
		OperatorIDs:  []int64{999999, 999991, 999998}, // Default test operator IDs
		AdminIDs:     []int64{999999},
		TeamAliasTTL: 10 * time.Minute,
	}
}
