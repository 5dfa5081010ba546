package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/internal/ai"
	"fjacquet/spendlens/internal/logging"
)

type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) Suggest(ctx context.Context, text string) (string, bool, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStrategy) Name() string { return "Mock" }

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) Analyze(ctx context.Context, prompt ai.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestCategorizer_FirstStrategyWins(t *testing.T) {
	first := new(MockStrategy)
	second := new(MockStrategy)
	first.On("Suggest", mock.Anything, "coffee").Return("Food", true, nil)

	c := NewCategorizer(logging.NewMockLogger(), first, second)
	got, found := c.Suggest(context.Background(), "coffee")

	assert.True(t, found)
	assert.Equal(t, "Food", got)
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestCategorizer_FailingStrategyFallsThrough(t *testing.T) {
	failing := new(MockStrategy)
	backup := new(MockStrategy)
	failing.On("Suggest", mock.Anything, "rent").Return("", false, errors.New("boom"))
	backup.On("Suggest", mock.Anything, "rent").Return("Bills", true, nil)

	logger := logging.NewMockLogger()
	c := NewCategorizer(logger, nil, failing, backup)
	got, found := c.Suggest(context.Background(), "rent")

	assert.True(t, found)
	assert.Equal(t, "Bills", got)
	assert.True(t, logger.HasEntry("WARN", "Category suggestion failed"))
}

func TestCategorizer_NothingFound(t *testing.T) {
	none := new(MockStrategy)
	none.On("Suggest", mock.Anything, "misc").Return("", false, nil)

	got, found := NewCategorizer(nil, none).Suggest(context.Background(), "misc")
	assert.False(t, found)
	assert.Empty(t, got)
}

func TestCategorizer_CancelledContext(t *testing.T) {
	s := new(MockStrategy)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found := NewCategorizer(nil, s).Suggest(ctx, "coffee")
	assert.False(t, found)
	s.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestAIStrategy_Suggest(t *testing.T) {
	categories := []string{"Food", "Gas", "Bills"}

	t.Run("answer matched case-insensitively", func(t *testing.T) {
		service := new(MockQueryService)
		service.On("Analyze", mock.Anything, mock.MatchedBy(func(p ai.Prompt) bool {
			return p.System == categorySystemPrompt && p.User == "Categories: Food, Gas, Bills\nExpense: refilled at Costco"
		})).Return(" gas.\n", nil)

		got, found, err := NewAIStrategy(service, categories, nil).Suggest(context.Background(), "refilled at Costco")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Gas", got)
		service.AssertExpectations(t)
	})

	t.Run("unknown answer ignored", func(t *testing.T) {
		service := new(MockQueryService)
		service.On("Analyze", mock.Anything, mock.Anything).Return("Groceries", nil)
		logger := logging.NewMockLogger()

		_, found, err := NewAIStrategy(service, categories, logger).Suggest(context.Background(), "milk")
		require.NoError(t, err)
		assert.False(t, found)
		assert.True(t, logger.HasEntry("DEBUG", "AI answer is not a known category"))
	})

	t.Run("service error returned", func(t *testing.T) {
		service := new(MockQueryService)
		service.On("Analyze", mock.Anything, mock.Anything).Return("", errors.New("quota"))

		_, found, err := NewAIStrategy(service, categories, nil).Suggest(context.Background(), "milk")
		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("no service", func(t *testing.T) {
		_, found, err := NewAIStrategy(nil, categories, nil).Suggest(context.Background(), "milk")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
