package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/ai"
	"fjacquet/spendlens/internal/logging"
)

const categorySystemPrompt = "You classify personal expenses. Reply with exactly one category name from the list and nothing else."

// AIStrategy asks a language model to pick one of the known categories.
// Answers outside the list are ignored.
type AIStrategy struct {
	service    ai.QueryService
	categories []string
	logger     logging.Logger
}

// NewAIStrategy creates a strategy limited to categories.
func NewAIStrategy(service ai.QueryService, categories []string, logger logging.Logger) *AIStrategy {
	return &AIStrategy{
		service:    service,
		categories: categories,
		logger:     logging.OrDefault(logger),
	}
}

// Name returns the name of this strategy.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Suggest sends the text and the category list to the model.
func (s *AIStrategy) Suggest(ctx context.Context, text string) (string, bool, error) {
	if s.service == nil || len(s.categories) == 0 || strings.TrimSpace(text) == "" {
		return "", false, nil
	}

	prompt := ai.Prompt{
		System: categorySystemPrompt,
		User:   fmt.Sprintf("Categories: %s\nExpense: %s", strings.Join(s.categories, ", "), text),
	}
	answer, err := s.service.Analyze(ctx, prompt)
	if err != nil {
		return "", false, err
	}

	answer = strings.Trim(strings.TrimSpace(answer), ".\"'")
	for _, c := range s.categories {
		if strings.EqualFold(c, answer) {
			return c, true, nil
		}
	}
	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: logging.FieldCategory, Value: answer},
	).Debug("AI answer is not a known category")
	return "", false, nil
}
