package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	wednesday := time.Date(2025, 6, 11, 15, 4, 0, 0, time.UTC)

	from, to := WeekBounds(wednesday, time.Sunday)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), to)

	from, to = WeekBounds(wednesday, time.Monday)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), to)
}

func TestWeekBounds_OnWeekStart(t *testing.T) {
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	from, to := WeekBounds(sunday, time.Sunday)

	assert.Equal(t, sunday, from)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), to)
}

func TestReminderBucket_Window(t *testing.T) {
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	from, to := DefaultReminderBuckets[0].Window(now)

	assert.Equal(t, time.Date(2025, 6, 11, 9, 59, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC), to)
	assert.True(t, IsKnownMarker(DefaultReminderBuckets[1].Marker))
	assert.False(t, IsKnownMarker("status"))
}
