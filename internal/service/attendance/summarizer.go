package attendance

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	leaveservice "github.com/garagepro/garage-backend-go/internal/service/leave"
)

// Summarizer loads a period's records and approved leave and runs the
// aggregator and the leave reconciler over them.
type Summarizer struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	aggregator     *Aggregator
	reconciler     *leaveservice.Reconciler
}

func NewSummarizer(attendanceRepo attendance.AttendanceRepository, leaveRepo leave.LeaveRequestRepository, aggregator *Aggregator, reconciler *leaveservice.Reconciler) *Summarizer {
	return &Summarizer{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		aggregator:     aggregator,
		reconciler:     reconciler,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, emp employee.Employee, start, end civil.Date) (attendance.Summary, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	summary, err := s.aggregator.Aggregate(emp, start, end, records)
	if err != nil {
		return attendance.Summary{}, err
	}

	leaves, err := s.leaveRepo.GetApprovedInRange(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load approved leave: %w", err)
	}

	return s.reconciler.Reconcile(summary, leaves), nil
}
