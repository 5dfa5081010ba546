package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// FallbackCategories is used when no categories file can be found.
var FallbackCategories = []string{
	"Food", "Gas", "Shopping", "Entertainment", "Bills",
	"Transportation", "Healthcare", "Errands", "Subscriptions", "Other",
}

// otherCategory is offered in the picker but stored as models.DefaultCategory.
const otherCategory = "Other"

// categoriesFile is the YAML layout of the categories file.
type categoriesFile struct {
	Categories []string            `yaml:"categories"`
	Keywords   map[string][]string `yaml:"keywords,omitempty"`
}

// DefaultKeywords maps categories to the merchant and item words used to
// suggest a category when none is given.
var DefaultKeywords = map[string][]string{
	"Food":           {"starbucks", "chipotle", "mcdonalds", "coffee", "lunch", "dinner", "breakfast", "restaurant", "pizza", "groceries"},
	"Gas":            {"shell", "chevron", "exxon", "fuel", "gas", "tank"},
	"Transportation": {"uber", "lyft", "taxi", "bus", "train", "parking", "toll"},
	"Entertainment":  {"movie", "movies", "cinema", "concert", "theater", "tickets"},
	"Subscriptions":  {"netflix", "spotify", "subscription", "hulu"},
	"Bills":          {"rent", "electric", "electricity", "internet", "utilities", "insurance"},
	"Shopping":       {"amazon", "target", "walmart", "clothes", "shoes"},
	"Healthcare":     {"pharmacy", "doctor", "dentist", "medicine"},
}

// CategoryStore loads the list of categories offered when logging an expense.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store reading categoriesFile.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".spendlens", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".spendlens", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories returns the configured categories in file order. A missing
// or empty file yields FallbackCategories. Both a top-level "categories" key
// and a bare YAML list are accepted.
func (s *CategoryStore) LoadCategories() ([]string, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Categories file not found, using built-in list", logging.Field{Key: logging.FieldFile, Value: filename})
		return fallback(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var wrapped categoriesFile
	if err := yaml.Unmarshal(data, &wrapped); err == nil {
		if len(wrapped.Categories) == 0 {
			return fallback(), nil
		}
		return s.clean(wrapped.Categories, filePath), nil
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}
	if len(list) == 0 {
		return fallback(), nil
	}
	return s.clean(list, filePath), nil
}

// LoadKeywords returns the keyword map of the categories file, or
// DefaultKeywords when the file is missing or defines none.
func (s *CategoryStore) LoadKeywords() (map[string][]string, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return defaultKeywords(), nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var wrapped categoriesFile
	if err := yaml.Unmarshal(data, &wrapped); err != nil || len(wrapped.Keywords) == 0 {
		return defaultKeywords(), nil
	}
	return wrapped.Keywords, nil
}

// SaveCategories writes categories to the configured file. Keywords already
// in the file are kept.
func (s *CategoryStore) SaveCategories(categories []string) error {
	filePath := s.CategoriesFile
	if filePath == "" {
		filePath = "categories.yaml"
	}
	if err := fileutils.EnsureParentDir(filePath); err != nil {
		return err
	}

	out := categoriesFile{Categories: categories}
	if existing, err := os.ReadFile(filePath); err == nil {
		var wrapped categoriesFile
		if yaml.Unmarshal(existing, &wrapped) == nil {
			out.Keywords = wrapped.Keywords
		}
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	if err := os.WriteFile(filePath, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}
	s.logger.Debug("Saved categories", logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return nil
}

// NormalizeCategory returns the canonical spelling of a known category,
// keeps unknown categories as typed and maps "" and "Other" to
// models.DefaultCategory.
func (s *CategoryStore) NormalizeCategory(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, otherCategory) {
		return models.DefaultCategory
	}

	categories, err := s.LoadCategories()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load categories, keeping input as typed")
		return input
	}
	for _, c := range categories {
		if strings.EqualFold(c, input) {
			return c
		}
	}
	return input
}

func (s *CategoryStore) clean(in []string, filePath string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(out)})
	return out
}

func defaultKeywords() map[string][]string {
	out := make(map[string][]string, len(DefaultKeywords))
	for category, words := range DefaultKeywords {
		out[category] = append([]string(nil), words...)
	}
	return out
}

func fallback() []string {
	out := make([]string, len(FallbackCategories))
	copy(out, FallbackCategories)
	return out
}
