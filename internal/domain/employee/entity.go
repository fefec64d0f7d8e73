package employee

import (
	"time"

	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        *string
	PhoneNumber  *string
	Address      *string
	Position     string
	PayType      PayType
	// PayRate is the salary for one pay period when PayType is fixed,
	// or the wage per worked hour when PayType is hourly.
	PayRate    decimal.Decimal
	ShiftStart workday.Clock
	ShiftEnd   workday.Clock
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PayType string

const (
	PayTypeFixed  PayType = "fixed"
	PayTypeHourly PayType = "hourly"
)

func (p PayType) IsValid() bool {
	return p == PayTypeFixed || p == PayTypeHourly
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ShiftLength returns the scheduled working time for one day.
func (e Employee) ShiftLength() time.Duration {
	return workday.ShiftLength(e.ShiftStart, e.ShiftEnd)
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

func (e Employee) Brief() BriefResponse {
	return BriefResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Position:     e.Position,
	}
}
