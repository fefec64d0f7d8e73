package salary

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle of a salary record. It only moves forward:
// draft -> finalized -> paid.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusPaid      Status = "paid"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusFinalized || s == StatusPaid
}

// Next returns the only status s may move to, or false when s is terminal.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusDraft:
		return StatusFinalized, true
	case StatusFinalized:
		return StatusPaid, true
	}
	return "", false
}

func (s Status) CanTransitionTo(to Status) bool {
	next, ok := s.Next()
	return ok && next == to
}

// IsLocked reports whether figures may no longer change.
func (s Status) IsLocked() bool {
	return s != StatusDraft
}

type Salary struct {
	ID          string
	EmployeeID  string
	PeriodStart civil.Date
	PeriodEnd   civil.Date
	PeriodLabel string

	Tally      attendance.Tally
	TotalHours decimal.Decimal

	// Pay terms copied from the employee at generation time.
	PayType employee.PayType
	PayRate decimal.Decimal

	BasicPayment     decimal.Decimal
	AbsenceDeduction decimal.Decimal
	TaxDeduction     decimal.Decimal
	OtherDeduction   decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	Warnings         []string

	Status      Status
	PaymentDate *civil.Date
	GeneratedBy *string
	FinalizedBy *string
	FinalizedAt *time.Time
	PaidBy      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Calculation is the money part of a salary record.
type Calculation struct {
	BasicPayment     decimal.Decimal
	AbsenceDeduction decimal.Decimal
	TaxDeduction     decimal.Decimal
	OtherDeduction   decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	Warnings         []string
}

// Apply copies the calculation onto the record.
func (s *Salary) Apply(c Calculation) {
	s.BasicPayment = c.BasicPayment
	s.AbsenceDeduction = c.AbsenceDeduction
	s.TaxDeduction = c.TaxDeduction
	s.OtherDeduction = c.OtherDeduction
	s.TotalDeductions = c.TotalDeductions
	s.NetSalary = c.NetSalary
	s.Warnings = c.Warnings
}
