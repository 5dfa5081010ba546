package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/controller"
)

func runAsk(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, askFunc(cmd, args))
	return strings.TrimSpace(buf.String())
}

func TestAskCommand_WithoutAI(t *testing.T) {
	app, _ := common.NewTestApp(t)
	root.SetApp(app)
	defer root.SetApp(nil)

	assert.Equal(t, controller.MsgEmptyQuestion, runAsk(t))
	assert.Equal(t, controller.MsgNoData, runAsk(t, "How", "much?"))

	amount := decimal.NewFromInt(12)
	_, err := app.GetController().AddExpense(context.Background(), "lunch", "Food", &amount, nil)
	require.NoError(t, err)
	assert.Equal(t, controller.MsgNotConfigured, runAsk(t, "How", "much?"))
}

func TestAskCommand_WithOpenAI(t *testing.T) {
	var gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Messages, 2) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		gotQuestion = req.Messages[1].Content

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"You spent $12.00 on food."}}]}`))
	}))
	defer srv.Close()

	app, _ := common.NewTestAppWith(t, func(cfg *config.Config) {
		cfg.AI.Enabled = true
		cfg.AI.BaseURL = srv.URL
		cfg.AI.OpenAIAPIKey = "sk-test"
	})
	root.SetApp(app)
	defer root.SetApp(nil)

	amount := decimal.NewFromInt(12)
	_, err := app.GetController().AddExpense(context.Background(), "lunch", "Food", &amount, nil)
	require.NoError(t, err)

	assert.Equal(t, "You spent $12.00 on food.", runAsk(t, "How", "much", "on", "food?"))
	assert.Contains(t, gotQuestion, "$12.00 - Food (lunch)")
	assert.True(t, strings.HasSuffix(gotQuestion, "Question: How much on food?"))
}
