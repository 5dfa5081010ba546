package ai

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/spendlens/internal/expenseerror"
	"fjacquet/spendlens/internal/logging"
)

// transcribeInstruction precedes the audio blob in a transcription request.
const transcribeInstruction = "Transcribe this audio recording verbatim. Reply with the spoken words only."

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient answers questions and transcribes audio with Google Gemini.
type GeminiClient struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	timeout   time.Duration
	logger    logging.Logger
}

// NewGeminiClient connects to Gemini with apiKey. An empty modelName uses
// DefaultGeminiModel.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := newGeminiWithModel(client.GenerativeModel(modelName), modelName, timeout, logger)
	g.client = client
	return g, nil
}

func newGeminiWithModel(model contentGenerator, modelName string, timeout time.Duration, logger logging.Logger) *GeminiClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		model:     model,
		modelName: modelName,
		timeout:   timeout,
		logger:    logging.OrDefault(logger),
	}
}

// Name implements Client.
func (c *GeminiClient) Name() string { return ProviderGemini }

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClient) fail(op string, err error) error {
	c.logger.WithError(err).Error("Gemini request failed",
		logging.Field{Key: logging.FieldOperation, Value: op},
		logging.Field{Key: logging.FieldProvider, Value: ProviderGemini})
	return &expenseerror.ServiceError{Service: ProviderGemini, Op: op, Err: err}
}

func (c *GeminiClient) generate(ctx context.Context, op string, parts ...genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", c.fail(op, fmt.Errorf("Gemini API error: %w", err))
	}
	text := responseText(resp)
	if text == "" {
		return "", c.fail(op, fmt.Errorf("no response from Gemini API"))
	}
	return text, nil
}

// Analyze implements QueryService. The system message is sent as the leading text part.
func (c *GeminiClient) Analyze(ctx context.Context, prompt Prompt) (string, error) {
	start := time.Now()
	answer, err := c.generate(ctx, "analyze", genai.Text(prompt.System), genai.Text(prompt.User))
	if err != nil {
		return "", err
	}
	c.logger.Info("Expense analysis complete",
		logging.Field{Key: logging.FieldModel, Value: c.modelName},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return answer, nil
}

// Transcribe implements Transcriber. The audio is sent inline as a blob.
func (c *GeminiClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", c.fail("transcribe", fmt.Errorf("read audio: %w", err))
	}

	text, err := c.generate(ctx, "transcribe",
		genai.Text(transcribeInstruction),
		genai.Blob{MIMEType: AudioMIMEType(filename), Data: data})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	c.logger.Info("Transcription complete", logging.Field{Key: logging.FieldText, Value: text})
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// AudioMIMEType guesses the audio MIME type from the file extension.
func AudioMIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".mp3", ".mpeg", ".mpga":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
