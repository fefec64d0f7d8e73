package attendance

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ScanRequest is what the kiosk posts after decoding a badge QR code.
type ScanRequest struct {
	EmployeeID string  `json:"employeeId"`
	Location   *string `json:"location,omitempty"`
	Code       *string `json:"code,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	} else if len(r.EmployeeID) > 64 {
		errs.Add("employeeId", "employeeId must not exceed 64 characters")
	}
	if r.Location != nil && len(*r.Location) > 255 {
		errs.Add("location", "location must not exceed 255 characters")
	}

	return errs.Err()
}

type ScanResponse struct {
	Success    bool                    `json:"success"`
	IsCheckIn  bool                    `json:"isCheckIn"`
	Message    string                  `json:"message"`
	Employee   *employee.BriefResponse `json:"employee,omitempty"`
	Attendance *AttendanceResponse     `json:"attendance,omitempty"`
}

const (
	MessageCheckedIn  = "Checked In"
	MessageCheckedOut = "Checked Out"
)

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employeeId"`
	EmployeeName     *string  `json:"employeeName,omitempty"`
	EmployeeCode     *string  `json:"employeeCode,omitempty"`
	Date             string   `json:"date"`
	CheckIn          *string  `json:"checkIn,omitempty"`
	CheckOut         *string  `json:"checkOut,omitempty"`
	CheckInLocation  *string  `json:"checkInLocation,omitempty"`
	CheckOutLocation *string  `json:"checkOutLocation,omitempty"`
	HoursWorked      *float64 `json:"hoursWorked,omitempty"`
}

type AttendanceFilter struct {
	EmployeeID *string     `json:"employeeId,omitempty"`
	From       *civil.Date `json:"from,omitempty"`
	To         *civil.Date `json:"to,omitempty"`
	// OpenOnly keeps records that have a check-in but no check-out.
	OpenOnly bool `json:"openOnly"`
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
}

func (f *AttendanceFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 20
	}
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int64                `json:"totalCount"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"totalPages"`
}

// PeriodRequest names an employee and an inclusive date range.
type PeriodRequest struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`

	start civil.Date
	end   civil.Date
}

// MaxPeriodDays bounds a single aggregation.
const MaxPeriodDays = 366

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Collect(&errs)
	return errs.Err()
}

// Collect appends the period errors to errs so embedding requests can report them together.
func (r *PeriodRequest) Collect(errs *validator.ValidationErrors) {
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	var startOK, endOK bool
	r.start, startOK = validator.ParseCivilDate(r.StartDate)
	if !startOK {
		errs.Add("startDate", "startDate must be YYYY-MM-DD")
	}
	r.end, endOK = validator.ParseCivilDate(r.EndDate)
	if !endOK {
		errs.Add("endDate", "endDate must be YYYY-MM-DD")
	}
	if startOK && endOK {
		if r.end.Before(r.start) {
			errs.Add("endDate", "endDate must be on or after startDate")
		} else if r.end.DaysSince(r.start)+1 > MaxPeriodDays {
			errs.Add("endDate", "period must not exceed 366 days")
		}
	}
}

// Range returns the parsed dates. Only meaningful after Validate succeeded.
func (r *PeriodRequest) Range() (civil.Date, civil.Date) {
	return r.start, r.end
}

type SummaryRequest struct {
	PeriodRequest
}

type DayResponse struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	Hours     float64 `json:"hours"`
	CheckIn   *string `json:"checkIn,omitempty"`
	CheckOut  *string `json:"checkOut,omitempty"`
	LeaveType *string `json:"leaveType,omitempty"`
}

type TallyResponse struct {
	TotalWorkingDays   int            `json:"totalWorkingDays"`
	Present            int            `json:"present"`
	Late               int            `json:"late"`
	HalfDay            int            `json:"halfDay"`
	Absent             int            `json:"absent"`
	Incomplete         int            `json:"incomplete"`
	Leave              LeaveBreakdown `json:"leave"`
	ApprovedLeaveCount int            `json:"approvedLeaveCount"`
}

func (t Tally) ToResponse() TallyResponse {
	return TallyResponse{
		TotalWorkingDays:   t.WorkingDays,
		Present:            t.Present,
		Late:               t.Late,
		HalfDay:            t.HalfDay,
		Absent:             t.Absent,
		Incomplete:         t.Incomplete,
		Leave:              t.Leave,
		ApprovedLeaveCount: t.ApprovedLeaveCount,
	}
}

type SummaryResponse struct {
	EmployeeID string          `json:"employeeId"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Days       []DayResponse   `json:"days"`
	Tally      TallyResponse   `json:"tally"`
	TotalHours decimal.Decimal `json:"totalHours"`
}

// FeedTopic is the live feed every successful scan is published on.
const FeedTopic = "attendance"

const (
	FeedEventCheckIn  = "check_in"
	FeedEventCheckOut = "check_out"
)

type FeedEvent struct {
	Event string       `json:"event"`
	Data  ScanResponse `json:"data"`
}

type KioskCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}
