package attendance

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Attendance is one employee's record for one shop-local calendar day.
type Attendance struct {
	ID               string
	EmployeeID       string
	Date             civil.Date
	CheckIn          *time.Time
	CheckOut         *time.Time
	CheckInLocation  *string
	CheckOutLocation *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Duration returns check-out minus check-in, or false while the day is open.
func (a Attendance) Duration() (time.Duration, bool) {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0, false
	}
	return a.CheckOut.Sub(*a.CheckIn), true
}

type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayLate    DayStatus = "late"
	DayHalf    DayStatus = "half_day"
	DayAbsent  DayStatus = "absent"
	// DayIncomplete is a check-in without a check-out. It is paid as absent.
	DayIncomplete DayStatus = "incomplete"
	DayLeave      DayStatus = "leave"
	// DayOff is a weekly off day. Off days are outside every tally.
	DayOff DayStatus = "off"
)

// DayClassification is the verdict for one calendar day of a period.
type DayClassification struct {
	Date      civil.Date
	Status    DayStatus
	Hours     float64
	CheckIn   *time.Time
	CheckOut  *time.Time
	LeaveType *leave.LeaveType
}

type LeaveBreakdown struct {
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
	Annual int `json:"annual"`
	Other  int `json:"other"`
}

func (b LeaveBreakdown) Total() int {
	return b.Sick + b.Casual + b.Annual + b.Other
}

func (b *LeaveBreakdown) add(t leave.LeaveType) {
	switch t {
	case leave.LeaveTypeSick:
		b.Sick++
	case leave.LeaveTypeCasual:
		b.Casual++
	case leave.LeaveTypeAnnual:
		b.Annual++
	default:
		b.Other++
	}
}

// Tally counts working days per category. Present+Late+HalfDay+Absent+
// Incomplete+Leave.Total() always equals WorkingDays.
type Tally struct {
	WorkingDays        int
	Present            int
	Late               int
	HalfDay            int
	Absent             int
	Incomplete         int
	Leave              LeaveBreakdown
	ApprovedLeaveCount int
}

// NewTally counts the classified days. Off days are skipped.
func NewTally(days []DayClassification) Tally {
	var t Tally
	for _, d := range days {
		if d.Status == DayOff {
			continue
		}
		t.WorkingDays++
		switch d.Status {
		case DayPresent:
			t.Present++
		case DayLate:
			t.Late++
		case DayHalf:
			t.HalfDay++
		case DayIncomplete:
			t.Incomplete++
		case DayLeave:
			lt := leave.LeaveTypeOther
			if d.LeaveType != nil {
				lt = *d.LeaveType
			}
			t.Leave.add(lt)
		default:
			t.Absent++
		}
	}
	return t
}

// Summary is the classified view of one employee over a date range.
type Summary struct {
	EmployeeID string
	Start      civil.Date
	End        civil.Date
	Days       []DayClassification
	Tally      Tally
	// WorkedMillis is the sum of all completed check-in/check-out durations.
	WorkedMillis int64
}

// TotalHours converts the worked time to hours, rounded to two places.
func (s Summary) TotalHours() decimal.Decimal {
	return decimal.NewFromInt(s.WorkedMillis).Div(decimal.NewFromInt(int64(time.Hour / time.Millisecond))).Round(2)
}
