package leave

import (
	"time"

	"cloud.google.com/go/civil"
)

type LeaveType string

const (
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeOther  LeaveType = "other"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeSick, LeaveTypeCasual, LeaveTypeAnnual, LeaveTypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  civil.Date
	// EndDate is inclusive.
	EndDate      civil.Date
	TotalDays    int
	Reason       string
	Status       Status
	AdminRemarks *string
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Covers reports whether d falls inside the request's inclusive range.
func (l LeaveRequest) Covers(d civil.Date) bool {
	return !d.Before(l.StartDate) && !d.After(l.EndDate)
}

// Overlaps reports whether the request intersects [start, end].
func (l LeaveRequest) Overlaps(start, end civil.Date) bool {
	return !l.EndDate.Before(start) && !l.StartDate.After(end)
}
