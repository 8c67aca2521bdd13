package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string

	// Ledger settings.
	ReportsDir        string
	DefaultCurrency   string
	EODAdminUser      string
	DefaultSystemDate string // YYYY-MM-DD; seeds the parameter row when absent
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REPORTS_DIR", "reports")
	viper.SetDefault("DEFAULT_CURRENCY", "BDT")
	viper.SetDefault("EOD_ADMIN_USER", "ADMIN")
	viper.SetDefault("DEFAULT_SYSTEM_DATE", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:    viper.GetString("MIGRATIONS_PATH"),
		ReportsDir:        viper.GetString("REPORTS_DIR"),
		DefaultCurrency:   viper.GetString("DEFAULT_CURRENCY"),
		EODAdminUser:      viper.GetString("EOD_ADMIN_USER"),
		DefaultSystemDate: viper.GetString("DEFAULT_SYSTEM_DATE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}
