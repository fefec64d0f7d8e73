package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/database"
	"github.com/garagepro/garage-backend-go/internal/pkg/kiosk"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/sse"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employeeService employee.EmployeeService
	calendar        *workday.Calendar
	summarizer      *Summarizer
	// kiosk is nil when scans are accepted without a code.
	kiosk *kiosk.Verifier
	feed  *sse.Hub
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeService employee.EmployeeService,
	calendar *workday.Calendar,
	summarizer *Summarizer,
	kioskVerifier *kiosk.Verifier,
	feed *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		employeeService:      employeeService,
		calendar:             calendar,
		summarizer:           summarizer,
		kiosk:                kioskVerifier,
		feed:                 feed,
	}
}

// timePtrToString formats a timestamp in the shop's zone.
func (a *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(a.calendar.Location()).Format(time.RFC3339)
	return &format
}

func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     att.EmployeeName,
		EmployeeCode:     att.EmployeeCode,
		Date:             att.Date.String(),
		CheckIn:          a.timePtrToString(att.CheckIn),
		CheckOut:         a.timePtrToString(att.CheckOut),
		CheckInLocation:  att.CheckInLocation,
		CheckOutLocation: att.CheckOutLocation,
	}
	if d, ok := att.Duration(); ok {
		hours := math.Round(d.Hours()*100) / 100
		resp.HoursWorked = &hours
	}
	return resp
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	emp, err := a.employeeService.ResolveIdentifier(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.ScanResponse{}, employee.ErrEmployeeInactive
	}

	now := a.calendar.Now()
	if a.kiosk != nil && (req.Code == nil || !a.kiosk.Check(*req.Code, now)) {
		return attendance.ScanResponse{}, attendance.ErrInvalidKioskCode
	}
	today := a.calendar.DateOf(now)

	var (
		record    attendance.Attendance
		isCheckIn bool
	)
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var (
			created bool
			err     error
		)
		record, created, err = a.AttendanceRepository.CheckIn(ctx, attendance.Attendance{
			EmployeeID:      emp.ID,
			Date:            today,
			CheckIn:         &now,
			CheckInLocation: req.Location,
		})
		if err != nil {
			return err
		}
		if created {
			isCheckIn = true
			return nil
		}

		var updated bool
		record, updated, err = a.AttendanceRepository.CheckOut(ctx, emp.ID, today, now, req.Location)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			return err
		}
		if existing.CheckOut != nil {
			return attendance.ErrAlreadyCompleted
		}
		slog.Error("scan would close attendance with non-positive duration",
			"employee_id", emp.ID, "date", today.String(), "check_in", existing.CheckIn, "scan_at", now)
		return fmt.Errorf("%w: check-in is not before %s", attendance.ErrInvalidDuration, now.Format(time.RFC3339))
	})
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	message := attendance.MessageCheckedOut
	if isCheckIn {
		message = attendance.MessageCheckedIn
	}
	brief := emp.Brief()
	resp := a.mapAttendanceToResponse(record)

	slog.Info("attendance scan", "employee_id", emp.ID, "date", today.String(), "check_in", isCheckIn)
	result := attendance.ScanResponse{
		Success:    true,
		IsCheckIn:  isCheckIn,
		Message:    message,
		Employee:   &brief,
		Attendance: &resp,
	}

	event := attendance.FeedEventCheckOut
	if isCheckIn {
		event = attendance.FeedEventCheckIn
	}
	a.feed.Publish(attendance.FeedTopic, sse.Event{Event: event, Data: result})

	return result, nil
}

// Subscribe implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Subscribe(ctx context.Context) (<-chan attendance.FeedEvent, func()) {
	ch, cleanup := a.feed.Subscribe(attendance.FeedTopic)
	slog.Debug("attendance feed subscribed", "subscribers", a.feed.SubscriberCount(attendance.FeedTopic))

	out := make(chan attendance.FeedEvent, cap(ch))
	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				result, ok := event.Data.(attendance.ScanResponse)
				if !ok {
					continue
				}
				select {
				case out <- attendance.FeedEvent{Event: event.Event, Data: result}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Normalize()

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, a.mapAttendanceToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	start, end := req.Range()

	emp, err := a.employeeService.ResolveIdentifier(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	summary, err := a.summarizer.Summarize(ctx, emp, start, end)
	if err != nil {
		if errors.Is(err, attendance.ErrInvalidDuration) {
			slog.Warn("attendance summary hit invalid record", "employee_id", emp.ID, "error", err)
		}
		return attendance.SummaryResponse{}, err
	}

	days := make([]attendance.DayResponse, 0, len(summary.Days))
	for _, d := range summary.Days {
		day := attendance.DayResponse{
			Date:     d.Date.String(),
			Status:   string(d.Status),
			Hours:    math.Round(d.Hours*100) / 100,
			CheckIn:  a.timePtrToString(d.CheckIn),
			CheckOut: a.timePtrToString(d.CheckOut),
		}
		if d.LeaveType != nil {
			lt := string(*d.LeaveType)
			day.LeaveType = &lt
		}
		days = append(days, day)
	}

	return attendance.SummaryResponse{
		EmployeeID: emp.ID,
		StartDate:  start.String(),
		EndDate:    end.String(),
		Days:       days,
		Tally:      summary.Tally.ToResponse(),
		TotalHours: summary.TotalHours(),
	}, nil
}

// ExportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	table, err := spreadsheet.NewTable("Attendance", []string{
		"Date", "Employee Code", "Employee Name", "Check In", "Check Out", "Hours", "Check-in Location", "Check-out Location",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}

	filter.Page = 1
	filter.Limit = 500
	for {
		records, total, err := a.AttendanceRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		for _, att := range records {
			resp := a.mapAttendanceToResponse(att)
			if err := table.AddRow(
				resp.Date, deref(resp.EmployeeCode), deref(resp.EmployeeName),
				deref(resp.CheckIn), deref(resp.CheckOut), derefFloat(resp.HoursWorked),
				deref(resp.CheckInLocation), deref(resp.CheckOutLocation),
			); err != nil {
				return nil, err
			}
		}
		if int64(filter.Page*filter.Limit) >= total || len(records) == 0 {
			break
		}
		filter.Page++
	}

	return table.Bytes()
}

// KioskCode implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) KioskCode(ctx context.Context) (attendance.KioskCodeResponse, error) {
	if a.kiosk == nil {
		return attendance.KioskCodeResponse{}, attendance.ErrKioskDisabled
	}
	code, expiresAt, err := a.kiosk.Code(a.calendar.Now())
	if err != nil {
		return attendance.KioskCodeResponse{}, err
	}
	return attendance.KioskCodeResponse{Code: code, ExpiresAt: expiresAt}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
