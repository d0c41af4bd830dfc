package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func santiago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	loc := santiago(t)

	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15", loc)
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year)
		assert.Equal(t, time.January, date.Month)
		assert.Equal(t, 15, date.Day)
	})

	t.Run("Timestamp is converted to the business zone", func(t *testing.T) {
		// 02:00 UTC on the 11th is still the evening of the 10th in Santiago
		date, err := ParseDate("2024-03-11T02:00:00Z", loc)
		assert.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.March, 10), date)
	})

	t.Run("Time of day is ignored", func(t *testing.T) {
		morning, err := ParseDate("2024-03-10T08:00:00-03:00", loc)
		require.NoError(t, err)
		evening, err := ParseDate("2024-03-10T22:30:00-03:00", loc)
		require.NoError(t, err)
		assert.Equal(t, morning, evening)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15", loc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2024-02-30", loc)
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("  ", loc)
		assert.Error(t, err)
	})
}

func TestStartOfDay(t *testing.T) {
	loc := santiago(t)

	first, err := StartOfDay("2024-03-10", loc)
	require.NoError(t, err)
	second, err := StartOfDay("2024-03-10T17:45:00-03:00", loc)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 0, first.Hour())
	assert.Equal(t, loc, first.Location())
}

func TestToday(t *testing.T) {
	loc := santiago(t)
	now := time.Date(2024, time.March, 11, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.March, 10), Today(now, loc))
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)

	assert.Equal(t, NewDate(2024, time.February, 29), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.March, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2024, time.February, 27), d.AddDays(-1))
	assert.Equal(t, 2, d.DaysUntil(NewDate(2024, time.March, 1)))
	assert.Equal(t, NewDate(2024, time.May, 1), NewDate(2024, time.April, 31))

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(NewDate(2024, time.February, 28)))
	assert.Equal(t, 0, d.Compare(d))
	assert.Equal(t, -1, NewDate(2023, time.December, 31).Compare(NewDate(2024, time.January, 1)))
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.November, 30},
		{2024, time.December, 31},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte("null"), &empty))
	assert.True(t, empty.IsZero())

	// 23:30 in Santiago is already the next day in UTC
	var ts Date
	assert.Error(t, json.Unmarshal([]byte(`"2024-03-10T23:30:00-03:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`"10/03/2024"`), &ts))
	assert.True(t, ts.IsZero())
}

func TestDateScan(t *testing.T) {
	t.Run("time.Time keeps its own calendar day", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, NewDate(2024, time.March, 10), d)
	})

	t.Run("Bytes", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan([]byte("2024-03-10")))
		assert.Equal(t, NewDate(2024, time.March, 10), d)
	})

	t.Run("Timestamp text rejected", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan("2024-03-10T23:30:00-03:00"))
		assert.Error(t, d.Scan([]byte("2024-03-10 02:00:00+00")))
		assert.True(t, d.IsZero())
	})

	t.Run("Nil", func(t *testing.T) {
		d := NewDate(2024, time.March, 10)
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})

	t.Run("Unsupported type", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan(42))
	})

	t.Run("Value", func(t *testing.T) {
		v, err := NewDate(2024, time.March, 10).Value()
		require.NoError(t, err)
		assert.Equal(t, "2024-03-10", v)

		v, err = Date{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestParseMonth(t *testing.T) {
	d, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.March, 1), d)

	_, err = ParseMonth("March")
	assert.Error(t, err)
}
