package employee

import (
	"strings"

	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employeeCode"`
	FullName     string          `json:"fullName"`
	Email        *string         `json:"email,omitempty"`
	PhoneNumber  *string         `json:"phoneNumber,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Position     string          `json:"position"`
	PayType      string          `json:"payType"`
	PayRate      decimal.Decimal `json:"payRate"`
	ShiftStart   string          `json:"shiftStart"`
	ShiftEnd     string          `json:"shiftEnd"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	if validator.IsEmpty(r.EmployeeCode) {
		errs.Add("employeeCode", "employeeCode is required")
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employeeCode", "employeeCode must be 3-32 letters, digits or dashes")
	}

	if validator.IsEmpty(r.FullName) {
		errs.Add("fullName", "fullName is required")
	} else if len(r.FullName) > 255 {
		errs.Add("fullName", "fullName must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Position) {
		errs.Add("position", "position is required")
	}

	validateContact(&errs, r.Email, r.PhoneNumber)
	validatePay(&errs, r.PayType, r.PayRate)
	validateShift(&errs, r.ShiftStart, r.ShiftEnd)

	return errs.Err()
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID          string           `json:"-"`
	FullName    *string          `json:"fullName,omitempty"`
	Email       *string          `json:"email,omitempty"`
	PhoneNumber *string          `json:"phoneNumber,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Position    *string          `json:"position,omitempty"`
	PayType     *string          `json:"payType,omitempty"`
	PayRate     *decimal.Decimal `json:"payRate,omitempty"`
	ShiftStart  *string          `json:"shiftStart,omitempty"`
	ShiftEnd    *string          `json:"shiftEnd,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("fullName", "fullName must not be empty")
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs.Add("position", "position must not be empty")
	}
	validateContact(&errs, r.Email, r.PhoneNumber)
	if r.PayType != nil && !PayType(*r.PayType).IsValid() {
		errs.Add("payType", "payType must be fixed or hourly")
	}
	if r.PayRate != nil && r.PayRate.IsNegative() {
		errs.Add("payRate", "payRate must be non-negative")
	}
	if r.ShiftStart != nil {
		if _, err := workday.ParseClock(*r.ShiftStart); err != nil {
			errs.Add("shiftStart", "shiftStart must be HH:MM")
		}
	}
	if r.ShiftEnd != nil {
		if _, err := workday.ParseClock(*r.ShiftEnd); err != nil {
			errs.Add("shiftEnd", "shiftEnd must be HH:MM")
		}
	}

	return errs.Err()
}

func validateContact(errs *validator.ValidationErrors, email, phone *string) {
	if email != nil && !validator.IsEmpty(*email) && !validator.IsValidEmail(*email) {
		errs.Add("email", "invalid email format")
	}
	if phone != nil && !validator.IsEmpty(*phone) && !validator.IsValidPhoneNumber(*phone) {
		errs.Add("phoneNumber", "phoneNumber must be 7-15 digits")
	}
}

func validatePay(errs *validator.ValidationErrors, payType string, payRate decimal.Decimal) {
	if !PayType(payType).IsValid() {
		errs.Add("payType", "payType must be fixed or hourly")
	}
	if payRate.IsNegative() {
		errs.Add("payRate", "payRate must be non-negative")
	}
}

func validateShift(errs *validator.ValidationErrors, start, end string) {
	s, errStart := workday.ParseClock(start)
	if errStart != nil {
		errs.Add("shiftStart", "shiftStart must be HH:MM")
	}
	e, errEnd := workday.ParseClock(end)
	if errEnd != nil {
		errs.Add("shiftEnd", "shiftEnd must be HH:MM")
	}
	if errStart == nil && errEnd == nil && e.Minutes() <= s.Minutes() {
		errs.Add("shiftEnd", "shiftEnd must be after shiftStart")
	}
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Normalize applies default pagination.
func (f *EmployeeFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employeeCode"`
	FullName     string          `json:"fullName"`
	Email        *string         `json:"email,omitempty"`
	PhoneNumber  *string         `json:"phoneNumber,omitempty"`
	Address      *string         `json:"address,omitempty"`
	Position     string          `json:"position"`
	PayType      string          `json:"payType"`
	PayRate      decimal.Decimal `json:"payRate"`
	ShiftStart   string          `json:"shiftStart"`
	ShiftEnd     string          `json:"shiftEnd"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// BriefResponse is the employee card shown on the kiosk after a scan.
type BriefResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	FullName     string `json:"fullName"`
	Position     string `json:"position"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"totalCount"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

type ImportRowError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type ImportEmployeesResponse struct {
	Created int              `json:"created"`
	Failed  []ImportRowError `json:"failed"`
}
