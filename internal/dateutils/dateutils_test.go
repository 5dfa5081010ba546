package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-10-14", "2025-10-14"},
		{"  2025-10-14   ", "2025-10-14"},
		{"2025-10-14 23:59:59", "2025-10-14"},
		{"2025-10-14T08:00:00", "2025-10-14"},
		{"10/14/2025", "2025-10-14"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ToISODate(got))
			assert.Equal(t, 0, got.Hour())
		})
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 9, 17, 4, 5, 6, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDay(in))
	assert.True(t, StartOfDay(time.Time{}).IsZero())
}

func TestCompareDatesAndInRange(t *testing.T) {
	morning := time.Date(2025, 10, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 10, 10, 22, 0, 0, 0, time.UTC)
	next := time.Date(2025, 10, 11, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, CompareDates(morning, evening))
	assert.Equal(t, -1, CompareDates(evening, next))
	assert.Equal(t, 1, CompareDates(next, morning))

	assert.True(t, InRange(evening, morning, morning))
	assert.True(t, InRange(next, morning, next))
	assert.False(t, InRange(next, morning, evening))
}

func TestClocks(t *testing.T) {
	fixed := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, FixedClock(fixed).Now())
	assert.IsType(t, SystemClock{}, ClockOrSystem(nil))
	assert.Equal(t, fixed, ClockOrSystem(FixedClock(fixed)).Now())
}
