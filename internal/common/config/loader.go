// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	commonerrors "adf-relay/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GHL_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load .env from multiple possible locations (the relay is started from the
// repo root in production and from package dirs in tests).
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.GHL.APIKey == "" {
		if val := os.Getenv("GHL_API_KEY"); val != "" {
			cfg.GHL.APIKey = val
		}
	}
	if cfg.GHL.LocationID == "" {
		if val := os.Getenv("GHL_LOCATION_ID"); val != "" {
			cfg.GHL.LocationID = val
		}
	}
	if cfg.Email.FromAddress == "" {
		if val := os.Getenv("SMTP_FROM_ADDRESS"); val != "" {
			cfg.Email.FromAddress = val
		}
	}
	if cfg.Email.AppPassword == "" {
		if val := os.Getenv("SMTP_APP_PASSWORD"); val != "" {
			cfg.Email.AppPassword = val
		}
	}
	if cfg.Email.ImportAddress == "" {
		if val := os.Getenv("IMPORT_EMAIL_ADDRESS"); val != "" {
			cfg.Email.ImportAddress = val
		}
	}
	if cfg.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Redis.Address = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "adf-relay"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.GHL.BaseURL == "" {
		cfg.GHL.BaseURL = "https://rest.gohighlevel.com/v1"
	}
	if cfg.GHL.Timeout == 0 {
		cfg.GHL.Timeout = 15000
	}

	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "smtp"
	}
	if cfg.Email.Subject == "" {
		cfg.Email.Subject = "New Lead from GHL"
	}
	if cfg.Email.SMTP.Host == "" {
		cfg.Email.SMTP.Host = "smtp.gmail.com"
	}
	if cfg.Email.SMTP.Port == 0 {
		cfg.Email.SMTP.Port = 587
		cfg.Email.SMTP.UseTLS = true
	}
	if cfg.Email.SMTP.Timeout == 0 {
		cfg.Email.SMTP.Timeout = 30000
	}
	if cfg.Email.SES.Region == "" {
		cfg.Email.SES.Region = "us-east-1"
	}

	if cfg.ADF.Dialect == "" {
		cfg.ADF.Dialect = "drivecentric"
	}
	if cfg.ADF.OutputPath == "" {
		cfg.ADF.OutputPath = "lead_export.xml"
	}

	if cfg.Dedupe.KeyPrefix == "" {
		cfg.Dedupe.KeyPrefix = "lead:seen:"
	}
	if cfg.Dedupe.TTL == 0 {
		cfg.Dedupe.TTL = 1440 // 24h
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig checks the required secrets and reports every missing one at
// once, so a misconfigured deployment fails with the full list.
func validateConfig(cfg *Config) error {
	var missing []string

	if cfg.GHL.APIKey == "" {
		missing = append(missing, "ghl.api_key")
	}
	if cfg.GHL.LocationID == "" {
		missing = append(missing, "ghl.location_id")
	}
	if cfg.Email.FromAddress == "" {
		missing = append(missing, "email.from_address")
	}
	if cfg.Email.Provider == "smtp" && cfg.Email.AppPassword == "" {
		missing = append(missing, "email.app_password")
	}
	if cfg.Email.ImportAddress == "" {
		missing = append(missing, "email.import_address")
	}

	if len(missing) > 0 {
		return commonerrors.NewConfigurationInvalidError(
			"missing required configuration: " + strings.Join(missing, ", "))
	}

	if cfg.Email.Provider != "smtp" && cfg.Email.Provider != "ses" {
		return commonerrors.NewConfigurationInvalidError(
			fmt.Sprintf("email.provider must be smtp or ses, got %q", cfg.Email.Provider))
	}
	if cfg.ADF.Dialect != "generic" && cfg.ADF.Dialect != "drivecentric" {
		return commonerrors.NewConfigurationInvalidError(
			fmt.Sprintf("adf.dialect must be generic or drivecentric, got %q", cfg.ADF.Dialect))
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
