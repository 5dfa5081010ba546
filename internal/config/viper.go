// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"fjacquet/spendlens/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SPENDLENS"

// Supported backends and providers, mirrored from the store and ai packages
// so that validation does not import them.
var (
	validBackends  = []string{"csv", "xlsx", "sqlite", "sheets"}
	validProviders = []string{"openai", "gemini"}
)

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SheetsConfig locates the Google Sheets backend.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
	SheetName       string `mapstructure:"sheet_name" yaml:"sheet_name"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// StorageConfig selects where expense records live.
type StorageConfig struct {
	Backend string       `mapstructure:"backend" yaml:"backend"`
	Path    string       `mapstructure:"path" yaml:"path"`
	Sheets  SheetsConfig `mapstructure:"sheets" yaml:"sheets"`
}

// AIConfig configures the query and transcription services.
type AIConfig struct {
	Enabled            bool   `mapstructure:"enabled" yaml:"enabled"`
	Provider           string `mapstructure:"provider" yaml:"provider"`
	Model              string `mapstructure:"model" yaml:"model"`
	TranscriptionModel string `mapstructure:"transcription_model" yaml:"transcription_model"`
	BaseURL            string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey             string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	OpenAIAPIKey       string `mapstructure:"openai_api_key" yaml:"-"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key" yaml:"-"`
}

// ResolvedAPIKey returns ai.api_key when set, otherwise the provider's own
// environment key.
func (a AIConfig) ResolvedAPIKey() string {
	if a.APIKey != "" {
		return a.APIKey
	}
	if a.Provider == "gemini" {
		return a.GeminiAPIKey
	}
	return a.OpenAIAPIKey
}

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	Export struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"export" yaml:"export"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	AI AIConfig `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig loads the configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile initializes Viper configuration with hierarchical
// loading. A non-empty configFile replaces the search paths and must exist.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spendlens")
		v.AddConfigPath(".spendlens")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case !notFound:
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Provider keys come from their conventional, unprefixed variables
	bindings := map[string]string{
		"ai.openai_api_key": "OPENAI_API_KEY",
		"ai.gemini_api_key": "GEMINI_API_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", "csv")
	v.SetDefault("storage.path", "data/voice_expenses.csv")
	v.SetDefault("storage.sheets.spreadsheet_id", "")
	v.SetDefault("storage.sheets.sheet_name", "Expenses")
	v.SetDefault("storage.sheets.credentials_file", "")

	v.SetDefault("export.path", "data/expense_report.xlsx")
	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.transcription_model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.openai_api_key", "")
	v.SetDefault("ai.gemini_api_key", "")
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !contains(validBackends, config.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (must be one of %s)",
			config.Storage.Backend, strings.Join(validBackends, ", "))
	}

	if config.Storage.Backend == "sheets" {
		if config.Storage.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("storage.sheets.spreadsheet_id required for the sheets backend")
		}
	} else if strings.TrimSpace(config.Storage.Path) == "" {
		return fmt.Errorf("storage.path required for the %s backend", config.Storage.Backend)
	}

	if config.AI.Enabled {
		if !contains(validProviders, config.AI.Provider) {
			return fmt.Errorf("invalid ai provider: %s (must be one of %s)",
				config.AI.Provider, strings.Join(validProviders, ", "))
		}

		if config.AI.ResolvedAPIKey() == "" {
			return fmt.Errorf("%s required when AI is enabled", apiKeyEnv(config.AI.Provider))
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

func apiKeyEnv(provider string) string {
	if provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// String renders the configuration as YAML. Keys are never included.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("error rendering configuration: %v", err)
	}
	return string(out)
}

// ConfigureLoggingFromConfig builds the logrus logger described by the log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrus(config.Log.Level, config.Log.Format)
}
