package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, emp := range r.store.employees {
		if strings.EqualFold(emp.EmployeeCode, employeeCode) {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, emp := range r.store.employees {
		if strings.EqualFold(emp.EmployeeCode, newEmployee.EmployeeCode) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if newEmployee.ID == "" {
		newEmployee.ID = uuid.New().String()
	}
	if newEmployee.Status == "" {
		newEmployee.Status = employee.StatusActive
	}
	now := r.store.now()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.store.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.employees[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.EmployeeCode = existing.EmployeeCode
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = r.store.now()
	r.store.employees[emp.ID] = emp
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []employee.Employee
	for _, emp := range r.store.employees {
		if filter.Status != nil && string(emp.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(emp.FullName), q) && !strings.Contains(strings.ToLower(emp.EmployeeCode), q) {
				continue
			}
		}
		matched = append(matched, emp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].EmployeeCode < matched[j].EmployeeCode })

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}
