package dateparse

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-10-01 is a Wednesday.
var ref = time.Date(2025, 10, 1, 15, 30, 0, 0, time.UTC)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"canonical unchanged", "2025-12-31", "2025-12-31"},
		{"canonical leap day", "2024-02-29", "2024-02-29"},
		{"today", "today", "2025-10-01"},
		{"tomorrow", "tomorrow", "2025-10-02"},
		{"yesterday", "Yesterday", "2025-09-30"},
		{"in days", "in 3 days", "2025-10-04"},
		{"in one day", "in 1 day", "2025-10-02"},
		{"in zero days", "in 0 days", "2025-10-01"},
		{"days ago", "5 days ago", "2025-09-26"},
		{"next week", "next week", "2025-10-08"},
		{"last week", "last week", "2025-09-24"},
		{"weekday later this week", "Friday", "2025-10-03"},
		{"weekday abbreviation", "fri", "2025-10-03"},
		{"same weekday is a week out", "wednesday", "2025-10-08"},
		{"weekday earlier in week wraps", "monday", "2025-10-06"},
		{"this weekday", "this Friday", "2025-10-03"},
		{"next monday", "next Monday", "2025-10-06"},
		{"next friday", "next Friday", "2025-10-10"},
		{"next wednesday", "next wednesday", "2025-10-08"},
		{"next sunday", "next sunday", "2025-10-12"},
		{"last monday", "last Monday", "2025-09-29"},
		{"last wednesday", "last wednesday", "2025-09-24"},
		{"last friday", "last friday", "2025-09-26"},
		{"case and whitespace", "  NEXT   friday ", "2025-10-10"},
		{"filler prefix", "by Friday", "2025-10-03"},
		{"due prefix", "due tomorrow", "2025-10-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.expr, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unknown phrase", "sometime soon"},
		{"negative count", "in -2 days"},
		{"fractional count", "in 1.5 days"},
		{"word count", "in three days"},
		{"invalid calendar date", "2025-02-30"},
		{"invalid month", "2025-13-01"},
		{"unknown weekday-ish word", "next month"},
		{"bare qualifier", "next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.expr, ref)
			require.Error(t, err)
			assert.Empty(t, got)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.expr, pe.Expr)
		})
	}
}

func TestNormalize_CanonicalRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i += 37 {
		d := start.AddDate(0, 0, i).Format(Layout)
		got, err := Normalize(d, ref)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestNormalize_RelativeDaysAgree(t *testing.T) {
	for n := 0; n <= 60; n += 7 {
		fwd, err := Normalize("in "+strconv.Itoa(n)+" days", ref)
		require.NoError(t, err)
		back, err := Normalize(strconv.Itoa(n)+" days ago", ref)
		require.NoError(t, err)

		assert.Equal(t, ref.AddDate(0, 0, n).Format(Layout), fwd)
		assert.Equal(t, ref.AddDate(0, 0, -n).Format(Layout), back)
	}
}

func TestNormalize_UsesCalendarDateOnly(t *testing.T) {
	lateNight := time.Date(2025, 10, 1, 23, 59, 59, 0, time.UTC)
	got, err := Normalize("tomorrow", lateNight)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-02", got)
}

func TestDaysBetween(t *testing.T) {
	due, err := Parse("2025-09-28")
	require.NoError(t, err)

	assert.Equal(t, -3, DaysBetween(ref, due))
	assert.Equal(t, 3, DaysBetween(due, ref))
	assert.Equal(t, 0, DaysBetween(ref, ref.Add(5*time.Hour)))

	t.Run("centuries apart", func(t *testing.T) {
		early := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)
		late := time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC)
		// 800 Gregorian years hold exactly 292194 days.
		assert.Equal(t, 292194, DaysBetween(early, late))
		assert.Equal(t, -292194, DaysBetween(late, early))
	})
}
