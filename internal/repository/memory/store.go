// Package memory keeps every repository in process memory. It enforces the
// same uniqueness and state rules as the Postgres schema and is used for
// demos (STORAGE_DRIVER=memory) and service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/domain/user"
)

type attendanceKey struct {
	employeeID string
	date       civil.Date
}

type salaryKey struct {
	employeeID string
	start, end civil.Date
}

// Store is the shared state behind the memory repositories.
type Store struct {
	mu sync.RWMutex

	users      map[string]user.User
	employees  map[string]employee.Employee
	attendance map[string]attendance.Attendance
	attByDay   map[attendanceKey]string
	leaves     map[string]leave.LeaveRequest
	salaries   map[string]salary.Salary
	salByKey   map[salaryKey]string

	txMu sync.Mutex
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]user.User),
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Attendance),
		attByDay:   make(map[attendanceKey]string),
		leaves:     make(map[string]leave.LeaveRequest),
		salaries:   make(map[string]salary.Salary),
		salByKey:   make(map[salaryKey]string),
		now:        time.Now,
	}
}

type txKey struct{}

// WithinTransaction runs units of work one at a time. Writes made before fn
// fails are not rolled back.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) employeeRef(id string) (name, code *string) {
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	n, c := emp.FullName, emp.EmployeeCode
	return &n, &c
}

func paginate[T any](items []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
