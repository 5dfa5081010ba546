package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/internal/logging"
)

func TestLoadEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("SPENDLENS_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("SPENDLENS_TEST_FROM_DOTENV"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SPENDLENS_TEST_FROM_DOTENV=loaded\n"), 0600))

	logger := logging.NewMockLogger()
	loadEnvFile(logger)

	assert.Equal(t, "loaded", os.Getenv("SPENDLENS_TEST_FROM_DOTENV"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	sub := filepath.Join(chdirTemp(t), "nested")
	require.NoError(t, os.Mkdir(sub, 0750))
	require.NoError(t, os.Chdir(sub))

	logger := logging.NewMockLogger()
	loadEnvFile(logger)
	assert.True(t, logger.HasEntry("DEBUG", "No .env file found, using environment variables"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SPENDLENS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("SPENDLENS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SPENDLENS_TEST_UNSET_VALUE", "fallback"))
}
