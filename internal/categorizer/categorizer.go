// Package categorizer suggests a category for an expense when the user
// leaves it out.
package categorizer

import (
	"context"

	"fjacquet/spendlens/internal/logging"
)

// Categorizer runs its strategies in order and keeps the first suggestion.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer creates a categorizer. Nil strategies are skipped.
func NewCategorizer(logger logging.Logger, strategies ...Strategy) *Categorizer {
	c := &Categorizer{logger: logging.OrDefault(logger)}
	for _, s := range strategies {
		if s != nil {
			c.strategies = append(c.strategies, s)
		}
	}
	return c
}

// Suggest returns the first category any strategy finds. A failing
// strategy is logged and the next one is tried.
func (c *Categorizer) Suggest(ctx context.Context, text string) (string, bool) {
	for _, s := range c.strategies {
		if ctx.Err() != nil {
			return "", false
		}
		category, found, err := s.Suggest(ctx, text)
		if err != nil {
			c.logger.WithError(err).WithField("strategy", s.Name()).Warn("Category suggestion failed")
			continue
		}
		if found {
			c.logger.Debug("Category suggested",
				logging.Field{Key: "strategy", Value: s.Name()},
				logging.Field{Key: logging.FieldCategory, Value: category})
			return category, true
		}
	}
	return "", false
}
