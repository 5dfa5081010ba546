package config

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	appconfig "fjacquet/spendlens/internal/config"
)

func TestConfigCommand(t *testing.T) {
	app, cfg := common.NewTestAppWith(t, func(c *appconfig.Config) {
		c.AI.OpenAIAPIKey = "sk-very-secret"
	})
	root.SetApp(app)
	defer root.SetApp(nil)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, Cmd.RunE(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "backend: csv")
	assert.Contains(t, out, cfg.Storage.Path)
	assert.Contains(t, out, "# openai API key: set")
	assert.Contains(t, out, "# storage: csv at "+cfg.Storage.Path)
	assert.Contains(t, out, "# ai: disabled")
	assert.NotContains(t, out, "sk-very-secret")
}
