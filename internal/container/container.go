// Package container provides dependency injection for the spendlens application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/api/option"

	"fjacquet/spendlens/internal/ai"
	"fjacquet/spendlens/internal/categorizer"
	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/controller"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/parser"
	"fjacquet/spendlens/internal/report"
	"fjacquet/spendlens/internal/store"
	"fjacquet/spendlens/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	backend       store.Backend
	store         *store.ExpenseStore
	categoryStore *store.CategoryStore
	parser        *parser.ExpenseParser
	aiClient      ai.Client
	categorizer   *categorizer.Categorizer
	controller    *controller.ExpenseController
}

// Option customizes how NewContainer builds dependencies.
type Option func(*options)

type options struct {
	ctx           context.Context
	logger        logging.Logger
	clock         dateutils.Clock
	sheetsOptions []option.ClientOption
}

// WithContext sets the context used while connecting remote services.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock used for date extraction and report totals.
func WithClock(clock dateutils.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithSheetsOptions replaces the Google API client options derived from
// storage.sheets.credentials_file.
func WithSheetsOptions(opts ...option.ClientOption) Option {
	return func(o *options) { o.sheetsOptions = opts }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{ctx: context.Background(), clock: dateutils.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	if creds := cfg.Storage.Sheets.CredentialsFile; cfg.Storage.Backend == store.BackendSheets && creds != "" {
		warnIfExposed(creds, logger)
	}

	backend, err := newBackend(o.ctx, cfg.Storage, o.sheetsOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", cfg.Storage.Backend, err)
	}
	expenseStore := store.NewExpenseStore(backend, logger)
	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)

	expenseParser := parser.NewExpenseParser(logger, parser.WithClock(o.clock))
	formatter := report.NewFormatter(logger)

	deps := controller.Dependencies{
		Store:     expenseStore,
		Parser:    expenseParser,
		Formatter: formatter,
		Clock:     o.clock,
		Logger:    logger,
	}

	// Create AI client (if enabled). The interface fields stay nil otherwise.
	var aiClient ai.Client
	if cfg.AI.Enabled {
		aiClient, err = newAIClient(o.ctx, cfg.AI, logger)
		if err != nil {
			return nil, err
		}
		deps.Query = aiClient
		deps.Transcriber = aiClient
		logger.Info("AI assistant enabled",
			logging.Field{Key: logging.FieldProvider, Value: aiClient.Name()})
	} else {
		logger.Info("AI assistant disabled")
	}

	suggester, err := newCategorizer(categoryStore, aiClient, logger)
	if err != nil {
		return nil, err
	}

	ctrl, err := controller.NewExpenseController(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: backend.Name()},
		logging.Field{Key: logging.FieldFile, Value: backend.Location()},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return &Container{
		logger:        logger,
		config:        cfg,
		backend:       backend,
		store:         expenseStore,
		categoryStore: categoryStore,
		parser:        expenseParser,
		aiClient:      aiClient,
		categorizer:   suggester,
		controller:    ctrl,
	}, nil
}

// newCategorizer tries the keywords of the categories file first and asks
// the AI provider only when one is configured.
func newCategorizer(categoryStore *store.CategoryStore, aiClient ai.Client, logger logging.Logger) (*categorizer.Categorizer, error) {
	categories, err := categoryStore.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	keywords, err := categoryStore.LoadKeywords()
	if err != nil {
		return nil, fmt.Errorf("failed to load category keywords: %w", err)
	}

	strategies := []categorizer.Strategy{categorizer.NewKeywordStrategy(keywords, categories)}
	if aiClient != nil {
		strategies = append(strategies, categorizer.NewAIStrategy(aiClient, categories, logger))
	}
	return categorizer.NewCategorizer(logger, strategies...), nil
}

func newBackend(ctx context.Context, cfg config.StorageConfig, sheetsOptions []option.ClientOption) (store.Backend, error) {
	switch cfg.Backend {
	case store.BackendCSV, "":
		return store.NewCSVBackend(cfg.Path), nil
	case store.BackendXLSX:
		return store.NewXLSXBackend(cfg.Path), nil
	case store.BackendSQLite:
		return store.NewSQLiteBackend(cfg.Path), nil
	case store.BackendSheets:
		if sheetsOptions == nil {
			var err error
			sheetsOptions, err = store.SheetsCredentialOptions(cfg.Sheets.CredentialsFile)
			if err != nil {
				return nil, err
			}
		}
		return store.NewSheetsBackend(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, sheetsOptions...)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// warnIfExposed logs when a credentials file is readable by other users.
func warnIfExposed(path string, logger logging.Logger) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		logger.WithError(err).Warn("Credentials file permissions",
			logging.Field{Key: logging.FieldFile, Value: path})
	}
}

func newAIClient(ctx context.Context, cfg config.AIConfig, logger logging.Logger) (ai.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case ai.ProviderOpenAI, "":
		return ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:             cfg.ResolvedAPIKey(),
			BaseURL:            cfg.BaseURL,
			Model:              cfg.Model,
			TranscriptionModel: cfg.TranscriptionModel,
			Timeout:            timeout,
		}, logger), nil
	case ai.ProviderGemini:
		client, err := ai.NewGeminiClient(ctx, cfg.ResolvedAPIKey(), cfg.Model, timeout, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetBackend returns the storage backend selected by storage.backend.
func (c *Container) GetBackend() store.Backend {
	return c.backend
}

// GetStore returns the container's expense store instance.
func (c *Container) GetStore() *store.ExpenseStore {
	return c.store
}

// GetCategoryStore returns the store of selectable categories.
func (c *Container) GetCategoryStore() *store.CategoryStore {
	return c.categoryStore
}

// GetParser returns the free-text expense parser.
func (c *Container) GetParser() *parser.ExpenseParser {
	return c.parser
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() ai.Client {
	return c.aiClient
}

// GetCategorizer returns the category suggester.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetController returns the application controller.
func (c *Container) GetController() *controller.ExpenseController {
	return c.controller
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Info("Container closed")
	return nil
}
