package cron

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/garagepro/garage-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportIncompleteAttendance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 3, 1, 0, 0, 0, time.UTC)
	cal, err := workday.NewCalendar("UTC", nil)
	require.NoError(t, err)
	cal = cal.WithClock(func() time.Time { return now })

	store := memory.NewStore()
	emp, err := memory.NewEmployeeRepository(store).Create(ctx, employee.Employee{EmployeeCode: "MEC-001", FullName: "Budi"})
	require.NoError(t, err)
	records := memory.NewAttendanceRepository(store)

	checkIn := func(day int, out bool) {
		in := time.Date(2025, 5, day, 9, 0, 0, 0, time.UTC)
		_, _, err := records.CheckIn(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: civil.Date{Year: 2025, Month: 5, Day: day}, CheckIn: &in})
		require.NoError(t, err)
		if out {
			_, _, err = records.CheckOut(ctx, emp.ID, civil.Date{Year: 2025, Month: 5, Day: day}, in.Add(8*time.Hour), nil)
			require.NoError(t, err)
		}
	}
	checkIn(1, false)
	checkIn(2, false)

	jobs := NewAttendanceJobs(records, cal)

	found, err := jobs.ReportIncompleteAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, found)

	found, err = jobs.ReportIncompleteAttendance(ctx)
	require.NoError(t, err)
	assert.Zero(t, found, "a shop day is reported once")

	checkIn(3, true)
	now = now.Add(24 * time.Hour)
	found, err = jobs.ReportIncompleteAttendance(ctx)
	require.NoError(t, err)
	assert.Zero(t, found)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		calls++
		return nil
	})

	s.RunOnce(context.Background())
	s.Stop()

	assert.Equal(t, 1, calls)
}
