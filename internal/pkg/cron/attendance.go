package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
)

// AttendanceJobs reports records that were never checked out. They are left
// open on purpose: the aggregator pays them as absent, and an admin decides
// whether anything needs fixing.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	calendar       *workday.Calendar

	mu       sync.Mutex
	reported civil.Date
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, calendar *workday.Calendar) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		calendar:       calendar,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_incomplete_attendance", time.Hour, func(ctx context.Context) error {
		_, err := j.ReportIncompleteAttendance(ctx)
		return err
	})
}

// ReportIncompleteAttendance logs yesterday's open records once per shop day
// and returns how many it found.
func (j *AttendanceJobs) ReportIncompleteAttendance(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	today := j.calendar.Today()
	if j.reported == today {
		return 0, nil
	}
	yesterday := today.AddDays(-1)

	filter := attendance.AttendanceFilter{
		From:     &yesterday,
		To:       &yesterday,
		OpenOnly: true,
		Page:     1,
		Limit:    500,
	}
	found := 0
	for {
		records, total, err := j.attendanceRepo.List(ctx, filter)
		if err != nil {
			return found, fmt.Errorf("failed to list open attendance: %w", err)
		}
		for _, att := range records {
			slog.Warn("Cron: attendance left without check-out",
				"attendance_id", att.ID,
				"employee_id", att.EmployeeID,
				"date", att.Date.String(),
				"check_in", att.CheckIn)
		}
		found += len(records)
		if int64(found) >= total || len(records) == 0 {
			break
		}
		filter.Page++
	}

	j.reported = today
	if found > 0 {
		slog.Info("Cron: incomplete attendance reported", "date", yesterday.String(), "count", found)
	}
	return found, nil
}
