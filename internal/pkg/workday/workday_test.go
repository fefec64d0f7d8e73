package workday

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 30}, c)
	assert.Equal(t, "09:30", c.String())
	assert.Equal(t, 570, c.Minutes())

	for _, bad := range []string{"", "9", "25:00", "09:60", "nine"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestShiftLength(t *testing.T) {
	assert.Equal(t, 8*time.Hour, ShiftLength(Clock{Hour: 9}, Clock{Hour: 17}))
	assert.Equal(t, 90*time.Minute, ShiftLength(Clock{Hour: 8, Minute: 30}, Clock{Hour: 10}))
}

func TestCalendar_TodayUsesShopZone(t *testing.T) {
	cal, err := NewCalendar("Asia/Jakarta", nil)
	require.NoError(t, err)

	// 2025-05-01 20:30 UTC is already 2025-05-02 03:30 in Jakarta (UTC+7).
	instant := time.Date(2025, 5, 1, 20, 30, 0, 0, time.UTC)
	cal = cal.WithClock(func() time.Time { return instant })

	assert.Equal(t, civil.Date{Year: 2025, Month: 5, Day: 2}, cal.Today())
	assert.Equal(t, 3, cal.Now().Hour())
}

func TestCalendar_WorkingDays(t *testing.T) {
	cal, err := NewCalendar("UTC", []time.Weekday{time.Sunday})
	require.NoError(t, err)

	// May 2025: the 4th is a Sunday.
	start := civil.Date{Year: 2025, Month: 5, Day: 1}
	end := civil.Date{Year: 2025, Month: 5, Day: 7}

	assert.Len(t, cal.Days(start, end), 7)
	assert.Equal(t, 6, cal.WorkingDays(start, end))
	assert.False(t, cal.IsWorkingDay(civil.Date{Year: 2025, Month: 5, Day: 4}))
	assert.Empty(t, cal.Days(end, start))
}

func TestClockOn(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	got := Clock{Hour: 9}.On(civil.Date{Year: 2025, Month: 5, Day: 1}, loc)
	assert.Equal(t, time.Date(2025, 5, 1, 2, 0, 0, 0, time.UTC), got.UTC())
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 3, InclusiveDays(civil.Date{Year: 2025, Month: 5, Day: 1}, civil.Date{Year: 2025, Month: 5, Day: 3}))
	assert.Equal(t, 1, InclusiveDays(civil.Date{Year: 2025, Month: 5, Day: 1}, civil.Date{Year: 2025, Month: 5, Day: 1}))
}
