package attendance

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendance_Duration(t *testing.T) {
	in := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	open := Attendance{CheckIn: &in}
	_, ok := open.Duration()
	assert.False(t, ok)

	closed := Attendance{CheckIn: &in, CheckOut: &out}
	d, ok := closed.Duration()
	assert.True(t, ok)
	assert.Equal(t, 8*time.Hour, d)
}

func TestNewTally(t *testing.T) {
	sick := leave.LeaveTypeSick
	days := []DayClassification{
		{Status: DayPresent},
		{Status: DayLate},
		{Status: DayHalf},
		{Status: DayAbsent},
		{Status: DayIncomplete},
		{Status: DayLeave, LeaveType: &sick},
		{Status: DayLeave},
		{Status: DayOff},
	}

	tally := NewTally(days)

	assert.Equal(t, 7, tally.WorkingDays)
	assert.Equal(t, 1, tally.Present)
	assert.Equal(t, 1, tally.Late)
	assert.Equal(t, 1, tally.HalfDay)
	assert.Equal(t, 1, tally.Absent)
	assert.Equal(t, 1, tally.Incomplete)
	assert.Equal(t, LeaveBreakdown{Sick: 1, Other: 1}, tally.Leave)
	assert.Equal(t, tally.WorkingDays,
		tally.Present+tally.Late+tally.HalfDay+tally.Absent+tally.Incomplete+tally.Leave.Total())
}

func TestSummary_TotalHours(t *testing.T) {
	s := Summary{WorkedMillis: int64((8*time.Hour + 30*time.Minute) / time.Millisecond)}
	assert.Equal(t, "8.5", s.TotalHours().String())
}

func TestPeriodRequest_Validate(t *testing.T) {
	ok := PeriodRequest{EmployeeID: "e-1", StartDate: "2025-05-01", EndDate: "2025-05-31"}
	require.NoError(t, ok.Validate())
	start, end := ok.Range()
	assert.Equal(t, civil.Date{Year: 2025, Month: 5, Day: 1}, start)
	assert.Equal(t, civil.Date{Year: 2025, Month: 5, Day: 31}, end)

	tooLong := PeriodRequest{EmployeeID: "e-1", StartDate: "2024-01-01", EndDate: "2025-06-01"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, tooLong.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap()["endDate"], "366")
}

func TestScanRequest_Validate(t *testing.T) {
	req := ScanRequest{EmployeeID: "  MECH-001 "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "MECH-001", req.EmployeeID)

	empty := ScanRequest{}
	assert.Error(t, empty.Validate())
}
