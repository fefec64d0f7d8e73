package leave

import (
	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`

	start civil.Date
	end   civil.Date
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leaveType", "leaveType must be one of sick, casual, annual, other")
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
	if startOK && endOK && r.end.Before(r.start) {
		errs.Add("endDate", "endDate must be on or after startDate")
	}
	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

// Range returns the parsed dates. Only meaningful after Validate succeeded.
func (r *CreateLeaveRequest) Range() (civil.Date, civil.Date) {
	return r.start, r.end
}

type DecideLeaveRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Remarks != nil && len(*r.Remarks) > 1000 {
		errs.Add("remarks", "remarks must not exceed 1000 characters")
	}
	return errs.Err()
}

type LeaveFilter struct {
	EmployeeID *string     `json:"employeeId,omitempty"`
	Status     *string     `json:"status,omitempty"`
	LeaveType  *string     `json:"leaveType,omitempty"`
	From       *civil.Date `json:"from,omitempty"`
	To         *civil.Date `json:"to,omitempty"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

func (f *LeaveFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName *string `json:"employeeName,omitempty"`
	EmployeeCode *string `json:"employeeCode,omitempty"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	TotalDays    int     `json:"totalDays"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AdminRemarks *string `json:"adminRemarks,omitempty"`
	DecidedBy    *string `json:"decidedBy,omitempty"`
	DecidedAt    *string `json:"decidedAt,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

type ListLeaveResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	TotalCount int64                  `json:"totalCount"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}
