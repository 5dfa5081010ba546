package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"fjacquet/spendlens/internal/expenseerror"
	"fjacquet/spendlens/internal/logging"
)

// OpenAIClient calls an OpenAI-compatible chat-completions and
// audio-transcriptions API.
type OpenAIClient struct {
	apiKey             string
	baseURL            string
	model              string
	transcriptionModel string
	httpClient         *http.Client
	logger             logging.Logger
}

// OpenAIConfig holds the OpenAIClient settings. Empty fields take the defaults.
type OpenAIConfig struct {
	APIKey             string
	BaseURL            string
	Model              string
	TranscriptionModel string
	Timeout            time.Duration
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type openAITranscription struct {
	Text string `json:"text"`
}

// NewOpenAIClient creates an OpenAIClient.
func NewOpenAIClient(cfg OpenAIConfig, logger logging.Logger) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = DefaultOpenAITranscriptionModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &OpenAIClient{
		apiKey:             cfg.APIKey,
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		model:              cfg.Model,
		transcriptionModel: cfg.TranscriptionModel,
		httpClient:         &http.Client{Timeout: cfg.Timeout},
		logger:             logging.OrDefault(logger),
	}
}

// Name implements Client.
func (c *OpenAIClient) Name() string { return ProviderOpenAI }

func (c *OpenAIClient) fail(op string, err error) error {
	c.logger.WithError(err).Error("OpenAI request failed",
		logging.Field{Key: logging.FieldOperation, Value: op},
		logging.Field{Key: logging.FieldProvider, Value: ProviderOpenAI})
	return &expenseerror.ServiceError{Service: ProviderOpenAI, Op: op, Err: err}
}

// Analyze implements QueryService.
func (c *OpenAIClient) Analyze(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	})
	if err != nil {
		return "", c.fail("analyze", fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", c.fail("analyze", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	respBody, err := c.do(req)
	if err != nil {
		return "", c.fail("analyze", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", c.fail("analyze", fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != nil {
		return "", c.fail("analyze", fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", c.fail("analyze", fmt.Errorf("response has no choices"))
	}

	c.logger.Info("Expense analysis complete",
		logging.Field{Key: logging.FieldModel, Value: c.model},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return parsed.Choices[0].Message.Content, nil
}

// Transcribe implements Transcriber. The audio is uploaded as multipart form data.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", c.fail("transcribe", fmt.Errorf("create form file: %w", err))
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return "", c.fail("transcribe", fmt.Errorf("read audio: %w", err))
	}
	if err := mw.WriteField("model", c.transcriptionModel); err != nil {
		return "", c.fail("transcribe", fmt.Errorf("write model field: %w", err))
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", c.fail("transcribe", fmt.Errorf("write response_format field: %w", err))
	}
	if err := mw.Close(); err != nil {
		return "", c.fail("transcribe", fmt.Errorf("close multipart writer: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", c.fail("transcribe", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.do(req)
	if err != nil {
		return "", c.fail("transcribe", err)
	}

	var parsed openAITranscription
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", c.fail("transcribe", fmt.Errorf("decode response: %w", err))
	}

	text := strings.TrimSpace(parsed.Text)
	c.logger.Info("Transcription complete", logging.Field{Key: logging.FieldText, Value: text})
	return text, nil
}

func (c *OpenAIClient) do(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body, 300))
	}
	return body, nil
}

func truncate(b []byte, limit int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
