package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Email:        emp.Email,
		PhoneNumber:  emp.PhoneNumber,
		Address:      emp.Address,
		Position:     emp.Position,
		PayType:      string(emp.PayType),
		PayRate:      emp.PayRate,
		ShiftStart:   emp.ShiftStart.String(),
		ShiftEnd:     emp.ShiftEnd.String(),
		Status:       string(emp.Status),
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    emp.UpdatedAt.Format(time.RFC3339),
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// ResolveIdentifier implements employee.EmployeeService. Employee codes are at
// most 32 characters, so a UUID never collides with one.
func (s *EmployeeServiceImpl) ResolveIdentifier(ctx context.Context, identifier string) (employee.Employee, error) {
	identifier = strings.TrimSpace(identifier)
	if validator.IsValidUUID(identifier) {
		return s.employeeRepo.GetByID(ctx, identifier)
	}
	return s.employeeRepo.GetByEmployeeCode(ctx, identifier)
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Validate already parsed both clocks.
	shiftStart, _ := workday.ParseClock(req.ShiftStart)
	shiftEnd, _ := workday.ParseClock(req.ShiftEnd)

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        emptyToNil(req.Email),
		PhoneNumber:  emptyToNil(req.PhoneNumber),
		Address:      emptyToNil(req.Address),
		Position:     strings.TrimSpace(req.Position),
		PayType:      employee.PayType(req.PayType),
		PayRate:      req.PayRate.Round(2),
		ShiftStart:   shiftStart,
		ShiftEnd:     shiftEnd,
		Status:       employee.StatusActive,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeCodeExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		emp.Email = emptyToNil(req.Email)
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = emptyToNil(req.PhoneNumber)
	}
	if req.Address != nil {
		emp.Address = emptyToNil(req.Address)
	}
	if req.Position != nil {
		emp.Position = strings.TrimSpace(*req.Position)
	}
	if req.PayType != nil {
		emp.PayType = employee.PayType(*req.PayType)
	}
	if req.PayRate != nil {
		emp.PayRate = req.PayRate.Round(2)
	}
	if req.ShiftStart != nil {
		emp.ShiftStart, _ = workday.ParseClock(*req.ShiftStart)
	}
	if req.ShiftEnd != nil {
		emp.ShiftEnd, _ = workday.ParseClock(*req.ShiftEnd)
	}

	// The merged shift must still be a forward range.
	if emp.ShiftEnd.Minutes() <= emp.ShiftStart.Minutes() {
		var errs validator.ValidationErrors
		errs.Add("shiftEnd", "shiftEnd must be after shiftStart")
		return employee.EmployeeResponse{}, errs
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return mapEmployeeToResponse(updated), nil
}

// InactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) InactivateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !emp.IsActive() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	emp.Status = employee.StatusInactive
	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to inactivate employee: %w", err)
	}
	return mapEmployeeToResponse(updated), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
