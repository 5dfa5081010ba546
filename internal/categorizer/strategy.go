package categorizer

import "context"

// Strategy suggests a category for the free text of an expense.
type Strategy interface {
	// Suggest returns the category and whether the strategy found one.
	// A strategy that cannot decide returns false without an error.
	Suggest(ctx context.Context, text string) (string, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}
