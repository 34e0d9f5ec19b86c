package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"budgeteer/internal/models"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Embedded store
	DBPath string

	// Period rule: the two window start days per month.
	PeriodStartDay1 int
	PeriodStartDay2 int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		DBPath: getEnv("DB_PATH", "budgeteer.db"),

		PeriodStartDay1: getEnvInt("PERIOD_START_DAY_1", 1),
		PeriodStartDay2: getEnvInt("PERIOD_START_DAY_2", 16),
	}

	if !config.Rule().Valid() {
		log.Printf("Warning: invalid period start days (%d, %d), falling back to (1, 16)\n",
			config.PeriodStartDay1, config.PeriodStartDay2)
		config.PeriodStartDay1 = 1
		config.PeriodStartDay2 = 16
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Rule returns the configured period rule.
func (c *Config) Rule() models.PeriodRule {
	return models.PeriodRule{StartDay1: c.PeriodStartDay1, StartDay2: c.PeriodStartDay2}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
