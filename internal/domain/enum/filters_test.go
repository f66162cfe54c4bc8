package enum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStockFilter(t *testing.T) {
	got, err := ParseStockFilter("")
	require.NoError(t, err)
	assert.Equal(t, StockAll, got)

	for _, valid := range []string{"all", "in_stock", "out_of_stock"} {
		_, err := ParseStockFilter(valid)
		assert.NoError(t, err, "input %q", valid)
	}

	_, err = ParseStockFilter("low")
	assert.Error(t, err)
}

func TestParseDateFilter(t *testing.T) {
	got, err := ParseDateFilter("")
	require.NoError(t, err)
	assert.Equal(t, DateAll, got)

	_, err = ParseDateFilter("year")
	assert.Error(t, err)
}

func TestDateFilterBounds(t *testing.T) {
	now := time.Date(2026, 3, 7, 14, 30, 0, 0, time.UTC)

	_, _, ok := DateAll.Bounds(now)
	assert.False(t, ok)

	start, end, ok := DateToday.Bounds(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = DateWeek.Bounds(now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), start)
	assert.Equal(t, now, end)

	start, end, ok = DateMonth.Bounds(now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
	assert.Equal(t, now, end)
}
