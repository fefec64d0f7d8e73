package salary

import (
	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateSalaryRequest struct {
	attendance.PeriodRequest
	CustomLabel string `json:"customLabel"`
	// OtherDeduction is admin-entered. When nil a regenerated draft keeps its previous value.
	OtherDeduction *decimal.Decimal `json:"otherDeduction,omitempty"`
}

func (r *GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	r.PeriodRequest.Collect(&errs)
	if len(r.CustomLabel) > 100 {
		errs.Add("customLabel", "customLabel must not exceed 100 characters")
	}
	if r.OtherDeduction != nil && r.OtherDeduction.IsNegative() {
		errs.Add("otherDeduction", "otherDeduction must be non-negative")
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	ID          string  `json:"-"`
	Status      string  `json:"status"`
	PaymentDate *string `json:"paymentDate,omitempty"`

	paymentDate *civil.Date
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", "status must be draft, finalized or paid")
	}
	if r.PaymentDate != nil {
		if Status(r.Status) != StatusPaid {
			errs.Add("paymentDate", "paymentDate is only accepted when status is paid")
		} else if d, ok := validator.ParseCivilDate(*r.PaymentDate); !ok {
			errs.Add("paymentDate", "paymentDate must be YYYY-MM-DD")
		} else {
			r.paymentDate = &d
		}
	}

	return errs.Err()
}

// ParsedPaymentDate is set by Validate when a payment date was supplied.
func (r *UpdateStatusRequest) ParsedPaymentDate() *civil.Date {
	return r.paymentDate
}

type UpdateDeductionsRequest struct {
	ID             string          `json:"-"`
	OtherDeduction decimal.Decimal `json:"otherDeduction"`
}

func (r *UpdateDeductionsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.OtherDeduction.IsNegative() {
		errs.Add("otherDeduction", "otherDeduction must be non-negative")
	}
	return errs.Err()
}

type SalaryFilter struct {
	EmployeeID *string     `json:"employeeId,omitempty"`
	Status     *string     `json:"status,omitempty"`
	From       *civil.Date `json:"from,omitempty"`
	To         *civil.Date `json:"to,omitempty"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

func (f *SalaryFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 20
	}
}

type CalculationResponse struct {
	BasicPayment     decimal.Decimal `json:"basicPayment"`
	AbsenceDeduction decimal.Decimal `json:"absenceDeduction"`
	TaxDeduction     decimal.Decimal `json:"taxDeduction"`
	OtherDeduction   decimal.Decimal `json:"otherDeduction"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetSalary        decimal.Decimal `json:"netSalary"`
}

type SalaryResponse struct {
	ID           string                   `json:"id"`
	EmployeeID   string                   `json:"employeeId"`
	EmployeeName *string                  `json:"employeeName,omitempty"`
	EmployeeCode *string                  `json:"employeeCode,omitempty"`
	PeriodStart  string                   `json:"periodStart"`
	PeriodEnd    string                   `json:"periodEnd"`
	PeriodLabel  string                   `json:"periodLabel"`
	Tally        attendance.TallyResponse `json:"workingDays"`
	TotalHours   decimal.Decimal          `json:"totalHours"`
	PayType      string                   `json:"payType"`
	PayRate      decimal.Decimal          `json:"payRate"`
	Calculations CalculationResponse      `json:"calculations"`
	Warnings     []string                 `json:"warnings,omitempty"`
	Status       string                   `json:"status"`
	PaymentDate  *string                  `json:"paymentDate,omitempty"`
	FinalizedAt  *string                  `json:"finalizedAt,omitempty"`
	CreatedAt    string                   `json:"createdAt"`
	UpdatedAt    string                   `json:"updatedAt"`
}

type ListSalaryResponse struct {
	Salaries   []SalaryResponse `json:"salaries"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}
