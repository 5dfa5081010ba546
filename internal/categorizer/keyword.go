package categorizer

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// KeywordStrategy matches whole words of the text against per-category
// keyword lists. Categories are tried in priority order, then alphabetically.
type KeywordStrategy struct {
	keywords map[string][]string
	order    []string
}

// NewKeywordStrategy builds a strategy from a category to keywords map.
// Categories listed in priority come first, in that order.
func NewKeywordStrategy(keywords map[string][]string, priority []string) *KeywordStrategy {
	normalized := make(map[string][]string, len(keywords))
	for category, words := range keywords {
		for _, w := range words {
			w = strings.Join(tokenize(w), " ")
			if w != "" {
				normalized[category] = append(normalized[category], w)
			}
		}
	}

	order := make([]string, 0, len(normalized))
	seen := make(map[string]bool, len(normalized))
	for _, category := range priority {
		if _, ok := normalized[category]; ok && !seen[category] {
			order = append(order, category)
			seen[category] = true
		}
	}
	rest := make([]string, 0, len(normalized))
	for category := range normalized {
		if !seen[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)

	return &KeywordStrategy{keywords: normalized, order: append(order, rest...)}
}

// Name returns the name of this strategy.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Suggest returns the first category with a keyword present in text.
func (s *KeywordStrategy) Suggest(_ context.Context, text string) (string, bool, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", false, nil
	}
	// Padding lets multi-word keywords match on word boundaries.
	haystack := " " + strings.Join(tokens, " ") + " "

	for _, category := range s.order {
		for _, keyword := range s.keywords[category] {
			if strings.Contains(haystack, " "+keyword+" ") {
				return category, true, nil
			}
		}
	}
	return "", false, nil
}

// tokenize lowercases text and splits it into words. Apostrophes are
// dropped so "McDonald's" matches "mcdonalds".
func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "'", ""))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
