package attendance

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

type AttendanceRepository interface {
	// CheckIn inserts a record for (employee, date) unless one exists.
	// created is false when a record was already there.
	CheckIn(ctx context.Context, att Attendance) (record Attendance, created bool, err error)

	// CheckOut stamps check-out on the (employee, date) record only when it is
	// still open and at is after its check-in. updated is false otherwise.
	CheckOut(ctx context.Context, employeeID string, date civil.Date, at time.Time, location *string) (record Attendance, updated bool, err error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)

	// ListByEmployeeRange returns the employee's records in [start, end] ordered by date.
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end civil.Date) ([]Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
