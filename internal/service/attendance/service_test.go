package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/pkg/kiosk"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/sse"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/garagepro/garage-backend-go/internal/repository/memory"
	employeeservice "github.com/garagepro/garage-backend-go/internal/service/employee"
	leaveservice "github.com/garagepro/garage-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    attendance.AttendanceService
	emp    employee.Employee
	leaves leave.LeaveRequestRepository
	now    time.Time
}

func (f *fixture) setClock(day, hour, minute int) {
	f.now = time.Date(2025, 5, day, hour, minute, 0, 0, time.UTC)
}

func newFixture(t *testing.T, verifier *kiosk.Verifier) *fixture {
	t.Helper()
	f := &fixture{}
	f.setClock(1, 9, 0)

	cal, err := workday.NewCalendar("UTC", []time.Weekday{time.Sunday})
	require.NoError(t, err)
	cal = cal.WithClock(func() time.Time { return f.now })

	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	records := memory.NewAttendanceRepository(store)
	f.leaves = memory.NewLeaveRequestRepository(store)

	emp := mechanic()
	emp.ID = ""
	emp.EmployeeCode = "MEC-001"
	f.emp, err = employees.Create(context.Background(), emp)
	require.NoError(t, err)

	summarizer := NewSummarizer(records, f.leaves, NewAggregator(cal, 15*time.Minute), leaveservice.NewReconciler())
	f.svc = NewAttendanceService(store, records, employeeservice.NewEmployeeService(employees), cal, summarizer, verifier, sse.NewHub())
	return f
}

func TestScan_CheckInThenCheckOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	first, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	assert.True(t, first.IsCheckIn)
	assert.Equal(t, attendance.MessageCheckedIn, first.Message)
	require.NotNil(t, first.Employee)
	assert.Equal(t, "MEC-001", first.Employee.EmployeeCode)

	f.setClock(1, 17, 0)
	second, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: "mec-001"})
	require.NoError(t, err)
	assert.False(t, second.IsCheckIn)
	assert.Equal(t, attendance.MessageCheckedOut, second.Message)
	require.NotNil(t, second.Attendance)
	require.NotNil(t, second.Attendance.HoursWorked)
	assert.Equal(t, 8.0, *second.Attendance.HoursWorked)
	assert.Equal(t, first.Attendance.ID, second.Attendance.ID)

	summary, err := f.svc.GetSummary(ctx, attendance.SummaryRequest{PeriodRequest: attendance.PeriodRequest{
		EmployeeID: f.emp.ID, StartDate: "2025-05-01", EndDate: "2025-05-01",
	}})
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, "present", summary.Days[0].Status)
	assert.Equal(t, 8.0, summary.Days[0].Hours)
}

func TestScan_ThirdScanIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	f.setClock(1, 17, 0)
	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	f.setClock(1, 18, 0)
	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompleted)
}

func TestScan_SameInstantCannotCheckOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	assert.ErrorIs(t, err, attendance.ErrInvalidDuration)
}

func TestScan_CheckInOnlyIsIncomplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	summary, err := f.svc.GetSummary(ctx, attendance.SummaryRequest{PeriodRequest: attendance.PeriodRequest{
		EmployeeID: f.emp.ID, StartDate: "2025-05-01", EndDate: "2025-05-01",
	}})
	require.NoError(t, err)
	assert.Equal(t, "incomplete", summary.Days[0].Status)
	assert.Equal(t, 1, summary.Tally.Incomplete)
	assert.Equal(t, 0, summary.Tally.Absent)
	assert.True(t, summary.TotalHours.IsZero())
}

func TestScan_AfterMidnightStartsNewDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	f.setClock(1, 23, 59)
	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	f.setClock(2, 0, 1)
	resp, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	assert.True(t, resp.IsCheckIn)
	assert.Equal(t, "2025-05-02", resp.Attendance.Date)
}

func TestScan_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: "NOPE-1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: "  "})
	assert.Error(t, err)
}

func TestScan_KioskCode(t *testing.T) {
	ctx := context.Background()
	verifier, err := kiosk.NewVerifier("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	f := newFixture(t, verifier)

	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	assert.ErrorIs(t, err, attendance.ErrInvalidKioskCode)

	wrong := "000000"
	code, err := f.svc.KioskCode(ctx)
	require.NoError(t, err)
	if code.Code == wrong {
		wrong = "111111"
	}
	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID, Code: &wrong})
	assert.ErrorIs(t, err, attendance.ErrInvalidKioskCode)

	resp, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID, Code: &code.Code})
	require.NoError(t, err)
	assert.True(t, resp.IsCheckIn)
}

func TestKioskCode_Disabled(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.KioskCode(context.Background())
	assert.ErrorIs(t, err, attendance.ErrKioskDisabled)
}

func TestGetSummary_ApprovedLeaveCoversAbsentDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	req, err := f.leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: f.emp.ID, LeaveType: leave.LeaveTypeSick,
		StartDate: may(1), EndDate: may(3), TotalDays: 3, Status: leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = f.leaves.Decide(ctx, req.ID, leave.StatusApproved, nil, nil)
	require.NoError(t, err)

	summary, err := f.svc.GetSummary(ctx, attendance.SummaryRequest{PeriodRequest: attendance.PeriodRequest{
		EmployeeID: "MEC-001", StartDate: "2025-05-01", EndDate: "2025-05-03",
	}})

	require.NoError(t, err)
	require.Len(t, summary.Days, 3)
	for _, d := range summary.Days {
		assert.Equal(t, "leave", d.Status, d.Date)
		require.NotNil(t, d.LeaveType)
		assert.Equal(t, "sick", *d.LeaveType)
	}
	assert.Equal(t, 0, summary.Tally.Absent)
	assert.Equal(t, 3, summary.Tally.Leave.Sick)
	assert.Equal(t, 1, summary.Tally.ApprovedLeaveCount)
}

func TestListAndExportAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	f.setClock(2, 9, 0)
	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	list, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeID: &f.emp.ID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	assert.Len(t, list.Attendances, 1)

	got, err := f.svc.GetAttendance(ctx, list.Attendances[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list.Attendances[0].Date, got.Date)

	data, err := f.svc.ExportAttendance(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	rows, err := spreadsheet.ReadFirstSheet(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Employee Code", rows[0][1])
}

func TestSubscribe_ReceivesScans(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t, nil)

	events, cleanup := f.svc.Subscribe(ctx)
	defer cleanup()

	_, err := f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)
	f.setClock(1, 17, 0)
	_, err = f.svc.Scan(ctx, attendance.ScanRequest{EmployeeID: f.emp.ID})
	require.NoError(t, err)

	var got []string
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev.Event)
			assert.Equal(t, "MEC-001", ev.Data.Employee.EmployeeCode)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for feed events")
		}
	}
	assert.Equal(t, []string{attendance.FeedEventCheckIn, attendance.FeedEventCheckOut}, got)
}
