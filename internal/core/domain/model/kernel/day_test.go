package kernel_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	moscow := time.FixedZone("UTC+3", 3*60*60)

	t.Run("uses the calendar date of the given location", func(t *testing.T) {
		instant := time.Date(2025, time.March, 31, 22, 30, 0, 0, time.UTC)

		assert.Equal(t, "2025-03-31", kernel.DayOf(instant, time.UTC).String())
		assert.Equal(t, "2025-04-01", kernel.DayOf(instant, moscow).String())
	})

	t.Run("nil location falls back to UTC", func(t *testing.T) {
		instant := time.Date(2025, time.March, 31, 22, 30, 0, 0, time.UTC)

		assert.Equal(t, kernel.DayOf(instant, time.UTC), kernel.DayOf(instant, nil))
	})
}

func TestDay_StartAndNext(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	d := kernel.NewDay(2024, time.February, 28)

	assert.Equal(t, time.Date(2024, time.February, 28, 0, 0, 0, 0, loc), d.Start(loc))
	assert.Equal(t, "2024-02-29", d.Next().String())
	assert.Equal(t, "2024-03-01", d.Next().Next().String())
	assert.Equal(t, "2024-02-27", d.Prev().String())
}

func TestDay_Compare(t *testing.T) {
	a := kernel.NewDay(2025, time.January, 31)
	b := kernel.NewDay(2025, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(kernel.NewDay(2025, time.January, 31)))
	assert.False(t, a.IsZero())
	assert.True(t, kernel.Day{}.IsZero())
}

func TestParseDay(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := kernel.ParseDay("2025-06-08")

		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.June, d.Month())
		assert.Equal(t, 8, d.DayOfMonth())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := kernel.ParseDay("08.06.2025")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDaysInRange(t *testing.T) {
	from := kernel.NewDay(2025, time.December, 30)
	to := kernel.NewDay(2026, time.January, 2)

	days := kernel.DaysInRange(from, to)

	require.Len(t, days, 4)
	assert.Equal(t, "2025-12-30", days[0].String())
	assert.Equal(t, "2026-01-02", days[3].String())
	assert.Empty(t, kernel.DaysInRange(to, from))
	assert.Len(t, kernel.DaysInRange(from, from), 1)
}

func TestDaysBetween(t *testing.T) {
	from := kernel.NewDay(2024, time.February, 28)

	assert.Equal(t, 0, kernel.DaysBetween(from, from))
	assert.Equal(t, 2, kernel.DaysBetween(from, kernel.NewDay(2024, time.March, 1)))
	assert.Equal(t, 366, kernel.DaysBetween(from, kernel.NewDay(2025, time.February, 28)))
	assert.Equal(t, -1, kernel.DaysBetween(from, from.Prev()))
}
