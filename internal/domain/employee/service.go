package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ResolveIdentifier looks an employee up by UUID or by badge code.
	ResolveIdentifier(ctx context.Context, identifier string) (Employee, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// InactivateEmployee keeps the row for attendance and salary history.
	InactivateEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// ImportEmployees creates employees from the first sheet of an .xlsx workbook.
	ImportEmployees(ctx context.Context, r io.Reader) (ImportEmployeesResponse, error)
}
