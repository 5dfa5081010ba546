package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "csv", config.Storage.Backend)
	assert.Equal(t, "data/voice_expenses.csv", config.Storage.Path)
	assert.Equal(t, "Expenses", config.Storage.Sheets.SheetName)
	assert.Equal(t, "", config.Storage.Sheets.SpreadsheetID)
	assert.Equal(t, "data/expense_report.xlsx", config.Export.Path)
	assert.Equal(t, "categories.yaml", config.Categories.File)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "openai", config.AI.Provider)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
	assert.Equal(t, "", config.AI.ResolvedAPIKey())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"SPENDLENS_LOG_LEVEL":          "debug",
		"SPENDLENS_LOG_FORMAT":         "json",
		"SPENDLENS_STORAGE_BACKEND":    "sqlite",
		"SPENDLENS_STORAGE_PATH":       "data/expenses.db",
		"SPENDLENS_AI_ENABLED":         "true",
		"SPENDLENS_AI_PROVIDER":        "gemini",
		"SPENDLENS_AI_MODEL":           "gemini-1.5-pro",
		"SPENDLENS_AI_TIMEOUT_SECONDS": "45",
		"GEMINI_API_KEY":               "test-gemini-key",
		"OPENAI_API_KEY":               "test-openai-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "sqlite", config.Storage.Backend)
	assert.Equal(t, "data/expenses.db", config.Storage.Path)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 45, config.AI.TimeoutSeconds)
	assert.Equal(t, "test-gemini-key", config.AI.ResolvedAPIKey())
	assert.Equal(t, "test-openai-key", config.AI.OpenAIAPIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
  format: "json"
storage:
  backend: "xlsx"
  path: "books/expenses.xlsx"
export:
  path: "out/report.xlsx"
categories:
  file: "config/categories.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "xlsx", config.Storage.Backend)
	assert.Equal(t, "books/expenses.xlsx", config.Storage.Path)
	assert.Equal(t, "out/report.xlsx", config.Export.Path)
	assert.Equal(t, "config/categories.yaml", config.Categories.File)
}

func TestInitializeConfigFromFile(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sheets\n  sheets:\n    spreadsheet_id: abc123\n"), 0644))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sheets", config.Storage.Backend)
	assert.Equal(t, "abc123", config.Storage.Sheets.SpreadsheetID)
	assert.Equal(t, "Expenses", config.Storage.Sheets.SheetName)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
ai:
  enabled: true
  api_key: "file-key"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("SPENDLENS_LOG_LEVEL", "error")
	t.Setenv("OPENAI_API_KEY", "env-openai-key")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "file-key", config.AI.ResolvedAPIKey(), "an explicit ai.api_key wins over the provider variable")
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("SPENDLENS_STORAGE_BACKEND", "mongodb")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func validConfig() *Config {
	c := &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Storage: StorageConfig{
			Backend: "csv",
			Path:    "data/voice_expenses.csv",
			Sheets:  SheetsConfig{SheetName: "Expenses"},
		},
		AI: AIConfig{Provider: "openai", TimeoutSeconds: 30},
	}
	c.Export.Path = "data/expense_report.xlsx"
	c.Categories.File = "categories.yaml"
	return c
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid backend",
			modifyConfig: func(c *Config) { c.Storage.Backend = "postgres" },
			expectError:  "invalid storage backend",
		},
		{
			name:         "file backend without path",
			modifyConfig: func(c *Config) { c.Storage.Path = " " },
			expectError:  "storage.path required for the csv backend",
		},
		{
			name:         "sheets without spreadsheet id",
			modifyConfig: func(c *Config) { c.Storage.Backend = "sheets" },
			expectError:  "storage.sheets.spreadsheet_id required",
		},
		{
			name: "invalid provider",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.Provider = "claude"
				c.AI.APIKey = "k"
			},
			expectError: "invalid ai provider",
		},
		{
			name: "openai without key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.GeminiAPIKey = "wrong-provider-key"
			},
			expectError: "OPENAI_API_KEY required when AI is enabled",
		},
		{
			name: "gemini without key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.Provider = "gemini"
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid timeout seconds",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.OpenAIAPIKey = "k"
				c.AI.TimeoutSeconds = 301
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)

			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	sheets := validConfig()
	sheets.Storage.Backend = "sheets"
	sheets.Storage.Path = ""
	sheets.Storage.Sheets.SpreadsheetID = "abc"
	assert.NoError(t, sheets.Validate())

	disabled := validConfig()
	disabled.AI.TimeoutSeconds = 0
	assert.NoError(t, disabled.Validate(), "AI settings are not checked while AI is disabled")
}

func TestConfigString_OmitsKeys(t *testing.T) {
	config := validConfig()
	config.AI.APIKey = "sk-secret"
	config.AI.OpenAIAPIKey = "sk-openai"
	config.AI.GeminiAPIKey = "gm-secret"

	out := config.String()
	assert.Contains(t, out, "backend: csv")
	assert.Contains(t, out, "timeout_seconds: 30")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "sk-openai")
	assert.NotContains(t, out, "api_key")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validConfig()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	config.Log.Level = "bogus"
	config.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	assert.NotNil(t, NewLogger(config))
}

// chdirTemp moves into a fresh directory with an isolated HOME so that no
// config.yaml on the machine leaks into the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	return dir
}

// clearTestEnvVars clears environment variables that might affect tests
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"SPENDLENS_LOG_LEVEL",
		"SPENDLENS_LOG_FORMAT",
		"SPENDLENS_STORAGE_BACKEND",
		"SPENDLENS_STORAGE_PATH",
		"SPENDLENS_STORAGE_SHEETS_SPREADSHEET_ID",
		"SPENDLENS_STORAGE_SHEETS_SHEET_NAME",
		"SPENDLENS_STORAGE_SHEETS_CREDENTIALS_FILE",
		"SPENDLENS_EXPORT_PATH",
		"SPENDLENS_CATEGORIES_FILE",
		"SPENDLENS_AI_ENABLED",
		"SPENDLENS_AI_PROVIDER",
		"SPENDLENS_AI_MODEL",
		"SPENDLENS_AI_TRANSCRIPTION_MODEL",
		"SPENDLENS_AI_BASE_URL",
		"SPENDLENS_AI_TIMEOUT_SECONDS",
		"SPENDLENS_AI_API_KEY",
		"GEMINI_API_KEY",
		"OPENAI_API_KEY",
	}

	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
