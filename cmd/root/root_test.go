package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/logging"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "spendlens", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Log expenses")
	assert.Contains(t, root.Cmd.Long, "Google Sheets")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "data", "backend"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
		assert.NotEmpty(t, flag.Usage)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: csv\n  path: from-file.csv\n"), 0600))

	cfg, err := root.LoadConfig(root.GlobalFlags{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", cfg.Storage.Path)

	cfg, err = root.LoadConfig(root.GlobalFlags{ConfigFile: path, Backend: "sqlite", DataPath: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "x.db", cfg.Storage.Path)

	_, err = root.LoadConfig(root.GlobalFlags{ConfigFile: path, Backend: "paper"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestLoadConfig_DataFlagNeedsFileBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sheets\n  sheets:\n    spreadsheet_id: abc\n"), 0600))

	_, err := root.LoadConfig(root.GlobalFlags{ConfigFile: path, DataPath: "x.csv"})
	assert.EqualError(t, err, "--data applies only to the csv, xlsx, sqlite backends")

	cfg, err := root.LoadConfig(root.GlobalFlags{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "sheets", cfg.Storage.Backend)
}

func TestRootCommand_BackendUsageListsBackends(t *testing.T) {
	usage := root.Cmd.PersistentFlags().Lookup("backend").Usage
	assert.Equal(t, "Storage backend: csv, xlsx, sqlite or sheets", usage)
}

func TestApp(t *testing.T) {
	root.SetApp(nil)
	_, err := root.App()
	assert.Error(t, err)

	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "text"},
		Storage: config.StorageConfig{Backend: "csv", Path: filepath.Join(t.TempDir(), "e.csv")},
	}
	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	root.SetApp(c)
	defer root.SetApp(nil)

	got, err := root.App()
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, c.GetLogger(), root.Log)
}
