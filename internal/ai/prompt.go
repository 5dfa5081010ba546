package ai

import (
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/models"
)

// SystemPrompt frames every expense question.
const SystemPrompt = "You are a financial assistant analyzing expense data. Provide clear, concise, and helpful insights."

// FormatExpenseLine renders a record as "2025-10-10: $25.50 - Food (Lunch at Chipotle)".
func FormatExpenseLine(e models.Expense) string {
	return fmt.Sprintf("%s: $%s - %s (%s)", e.FormattedDate(), e.Amount.StringFixed(2), e.Category, e.Notes)
}

// BuildPrompt lists every record, one per line, followed by the question.
func BuildPrompt(records []models.Expense, question string) Prompt {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, FormatExpenseLine(r))
	}
	return Prompt{
		System: SystemPrompt,
		User:   fmt.Sprintf("Here are my expenses:\n%s\n\nQuestion: %s", strings.Join(lines, "\n"), question),
	}
}
