package memory

import (
	"context"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/google/uuid"
)

type salaryRepository struct {
	store *Store
}

func NewSalaryRepository(store *Store) salary.SalaryRepository {
	return &salaryRepository{store: store}
}

func (r *salaryRepository) SaveDraft(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := salaryKey{employeeID: s.EmployeeID, start: s.PeriodStart, end: s.PeriodEnd}
	now := r.store.now()
	if id, ok := r.store.salByKey[key]; ok {
		existing := r.store.salaries[id]
		if existing.Status.IsLocked() {
			return salary.Salary{}, salary.ErrSalaryLocked
		}
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		s.CreatedAt = now
	}

	s.Status = salary.StatusDraft
	s.PaymentDate, s.FinalizedBy, s.FinalizedAt, s.PaidBy = nil, nil, nil, nil
	s.UpdatedAt = now
	s.Warnings = append([]string(nil), s.Warnings...)
	r.store.salaries[s.ID] = s
	r.store.salByKey[key] = s.ID
	return r.withRef(s), nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.salaries[id]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return r.withRef(s), nil
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end civil.Date) (salary.Salary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.salByKey[salaryKey{employeeID: employeeID, start: start, end: end}]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return r.withRef(r.store.salaries[id]), nil
}

func (r *salaryRepository) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []salary.Salary
	for _, s := range r.store.salaries {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		if filter.From != nil && s.PeriodEnd.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.PeriodStart.After(*filter.To) {
			continue
		}
		matched = append(matched, r.withRef(s))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PeriodStart != matched[j].PeriodStart {
			return matched[i].PeriodStart.After(matched[j].PeriodStart)
		}
		return matched[i].EmployeeID < matched[j].EmployeeID
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *salaryRepository) UpdateStatus(ctx context.Context, req salary.StatusChange) (salary.Salary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.salaries[req.ID]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	if s.Status != req.From {
		return salary.Salary{}, salary.ErrInvalidStatusTransition
	}

	now := r.store.now()
	s.Status = req.To
	switch req.To {
	case salary.StatusFinalized:
		s.FinalizedBy = req.ActorID
		s.FinalizedAt = &now
	case salary.StatusPaid:
		s.PaymentDate = req.PaymentDate
		s.PaidBy = req.ActorID
	}
	s.UpdatedAt = now
	r.store.salaries[s.ID] = s
	return r.withRef(s), nil
}

func (r *salaryRepository) UpdateDeductions(ctx context.Context, in salary.Salary) (salary.Salary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.salaries[in.ID]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	if s.Status.IsLocked() {
		return salary.Salary{}, salary.ErrSalaryLocked
	}

	s.TaxDeduction = in.TaxDeduction
	s.OtherDeduction = in.OtherDeduction
	s.TotalDeductions = in.TotalDeductions
	s.NetSalary = in.NetSalary
	s.Warnings = append([]string(nil), in.Warnings...)
	s.UpdatedAt = r.store.now()
	r.store.salaries[s.ID] = s
	return r.withRef(s), nil
}

func (r *salaryRepository) DeleteDraft(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.salaries[id]
	if !ok {
		return salary.ErrSalaryNotFound
	}
	if s.Status.IsLocked() {
		return salary.ErrSalaryLocked
	}
	delete(r.store.salaries, id)
	delete(r.store.salByKey, salaryKey{employeeID: s.EmployeeID, start: s.PeriodStart, end: s.PeriodEnd})
	return nil
}

func (r *salaryRepository) withRef(s salary.Salary) salary.Salary {
	s.EmployeeName, s.EmployeeCode = r.store.employeeRef(s.EmployeeID)
	return s
}
