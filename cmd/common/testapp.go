package common

import (
	"path/filepath"
	"testing"

	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/logging"
)

// NewTestApp builds a container over a CSV store in a temporary directory
// for command tests. The returned config can be inspected for the paths used.
func NewTestApp(t testing.TB, opts ...container.Option) (*container.Container, *config.Config) {
	t.Helper()
	return NewTestAppWith(t, nil, opts...)
}

// NewTestAppWith is NewTestApp with a hook to adjust the config before the
// container is built.
func NewTestAppWith(t testing.TB, adjust func(*config.Config), opts ...container.Option) (*container.Container, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Storage: config.StorageConfig{
			Backend: "csv",
			Path:    filepath.Join(dir, "voice_expenses.csv"),
			Sheets:  config.SheetsConfig{SheetName: "Expenses"},
		},
		AI: config.AIConfig{Provider: "openai", TimeoutSeconds: 30},
	}
	cfg.Export.Path = filepath.Join(dir, "expense_report.xlsx")
	cfg.Categories.File = filepath.Join(dir, "categories.yaml")
	if adjust != nil {
		adjust(cfg)
	}

	opts = append([]container.Option{container.WithLogger(logging.NewMockLogger())}, opts...)
	c, err := container.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("failed to build test container: %v", err)
	}
	return c, cfg
}
