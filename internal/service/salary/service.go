package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/pkg/database"
	"github.com/garagepro/garage-backend-go/internal/pkg/jwt"
	"github.com/garagepro/garage-backend-go/internal/pkg/storage"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

// Summarizer produces the reconciled attendance view of a period.
type Summarizer interface {
	Summarize(ctx context.Context, emp employee.Employee, start, end civil.Date) (attendance.Summary, error)
}

type SalaryServiceImpl struct {
	tx database.Transactor
	salary.SalaryRepository
	employeeService employee.EmployeeService
	calendar        *workday.Calendar
	summarizer      Summarizer
	calculator      *Calculator
	// archive keeps the payslip handed out when a salary is paid. Nil disables archiving.
	archive storage.FileStorage
}

func NewSalaryService(
	tx database.Transactor,
	salaryRepository salary.SalaryRepository,
	employeeService employee.EmployeeService,
	calendar *workday.Calendar,
	summarizer Summarizer,
	calculator *Calculator,
	archive storage.FileStorage,
) salary.SalaryService {
	return &SalaryServiceImpl{
		tx:               tx,
		SalaryRepository: salaryRepository,
		employeeService:  employeeService,
		calendar:         calendar,
		summarizer:       summarizer,
		calculator:       calculator,
		archive:          archive,
	}
}

// GenerateSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GenerateSalary(ctx context.Context, req salary.GenerateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}
	start, end := req.Range()
	if end.After(s.calendar.Today()) {
		var errs validator.ValidationErrors
		errs.Add("endDate", "endDate must not be in the future")
		return salary.SalaryResponse{}, errs.Err()
	}

	emp, err := s.employeeService.ResolveIdentifier(ctx, req.EmployeeID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	label := req.CustomLabel
	if label == "" {
		label = PeriodLabel(start, end)
	}

	var saved salary.Salary
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		other := decimal.Zero
		if req.OtherDeduction != nil {
			other = *req.OtherDeduction
		}

		existing, err := s.SalaryRepository.GetByEmployeePeriod(ctx, emp.ID, start, end)
		switch {
		case err == nil:
			if existing.Status.IsLocked() {
				return salary.ErrSalaryLocked
			}
			if req.OtherDeduction == nil {
				other = existing.OtherDeduction
			}
		case !errors.Is(err, salary.ErrSalaryNotFound):
			return err
		}

		summary, err := s.summarizer.Summarize(ctx, emp, start, end)
		if err != nil {
			return err
		}

		calc := s.calculator.Calculate(emp, summary, other)
		for _, warning := range calc.Warnings {
			slog.Warn("salary calculation warning",
				"employee_id", emp.ID, "period_start", start.String(), "period_end", end.String(), "warning", warning)
		}

		record := salary.Salary{
			EmployeeID:  emp.ID,
			PeriodStart: start,
			PeriodEnd:   end,
			PeriodLabel: label,
			Tally:       summary.Tally,
			TotalHours:  summary.TotalHours(),
			PayType:     emp.PayType,
			PayRate:     emp.PayRate,
			GeneratedBy: jwt.ActorFromContext(ctx),
		}
		record.Apply(calc)

		saved, err = s.SalaryRepository.SaveDraft(ctx, record)
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary generated", "salary_id", saved.ID, "employee_id", emp.ID, "net_salary", saved.NetSalary.StringFixed(2))
	return s.mapSalaryToResponse(saved), nil
}

// GetSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	record, err := s.SalaryRepository.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return s.mapSalaryToResponse(record), nil
}

// ListSalaries implements salary.SalaryService.
func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryResponse, error) {
	filter.Normalize()

	records, total, err := s.SalaryRepository.List(ctx, filter)
	if err != nil {
		return salary.ListSalaryResponse{}, fmt.Errorf("failed to list salaries: %w", err)
	}

	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.mapSalaryToResponse(record))
	}

	return salary.ListSalaryResponse{
		Salaries:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// UpdateStatus implements salary.SalaryService.
func (s *SalaryServiceImpl) UpdateStatus(ctx context.Context, req salary.UpdateStatusRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	current, err := s.SalaryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	to := salary.Status(req.Status)
	if !current.Status.CanTransitionTo(to) {
		return salary.SalaryResponse{}, fmt.Errorf("%w: %s to %s", salary.ErrInvalidStatusTransition, current.Status, to)
	}

	change := salary.StatusChange{
		ID:      current.ID,
		From:    current.Status,
		To:      to,
		ActorID: jwt.ActorFromContext(ctx),
	}
	if to == salary.StatusPaid {
		change.PaymentDate = req.ParsedPaymentDate()
		if change.PaymentDate == nil {
			today := s.calendar.Today()
			change.PaymentDate = &today
		}
	}

	updated, err := s.SalaryRepository.UpdateStatus(ctx, change)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary status changed", "salary_id", updated.ID, "from", current.Status, "to", updated.Status)
	if updated.Status == salary.StatusPaid {
		if err := s.archivePayslip(ctx, updated); err != nil {
			slog.Error("failed to archive payslip", "salary_id", updated.ID, "error", err)
		}
	}
	return s.mapSalaryToResponse(updated), nil
}

// UpdateDeductions implements salary.SalaryService.
func (s *SalaryServiceImpl) UpdateDeductions(ctx context.Context, req salary.UpdateDeductionsRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	var updated salary.Salary
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.SalaryRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if current.Status.IsLocked() {
			return salary.ErrSalaryLocked
		}

		calc := s.calculator.Rededuct(current, req.OtherDeduction)
		for _, warning := range calc.Warnings {
			slog.Warn("salary calculation warning", "salary_id", current.ID, "warning", warning)
		}
		current.Apply(calc)

		updated, err = s.SalaryRepository.UpdateDeductions(ctx, current)
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return s.mapSalaryToResponse(updated), nil
}

// DeleteSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) DeleteSalary(ctx context.Context, id string) error {
	if err := s.SalaryRepository.DeleteDraft(ctx, id); err != nil {
		return err
	}
	slog.Info("salary draft deleted", "salary_id", id)
	return nil
}

// PeriodLabel names a calendar month as "May 2025" and any other range by its dates.
func PeriodLabel(start, end civil.Date) string {
	if start.Day == 1 && start.Year == end.Year && start.Month == end.Month && end.AddDays(1).Day == 1 {
		return fmt.Sprintf("%s %d", start.Month, start.Year)
	}
	return fmt.Sprintf("%s to %s", start, end)
}

func (s *SalaryServiceImpl) mapSalaryToResponse(record salary.Salary) salary.SalaryResponse {
	loc := s.calendar.Location()
	resp := salary.SalaryResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		EmployeeCode: record.EmployeeCode,
		PeriodStart:  record.PeriodStart.String(),
		PeriodEnd:    record.PeriodEnd.String(),
		PeriodLabel:  record.PeriodLabel,
		Tally:        record.Tally.ToResponse(),
		TotalHours:   record.TotalHours,
		PayType:      string(record.PayType),
		PayRate:      record.PayRate,
		Calculations: salary.CalculationResponse{
			BasicPayment:     record.BasicPayment,
			AbsenceDeduction: record.AbsenceDeduction,
			TaxDeduction:     record.TaxDeduction,
			OtherDeduction:   record.OtherDeduction,
			TotalDeductions:  record.TotalDeductions,
			NetSalary:        record.NetSalary,
		},
		Warnings:  record.Warnings,
		Status:    string(record.Status),
		CreatedAt: record.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if record.PaymentDate != nil {
		pd := record.PaymentDate.String()
		resp.PaymentDate = &pd
	}
	if record.FinalizedAt != nil {
		fa := record.FinalizedAt.In(loc).Format(time.RFC3339)
		resp.FinalizedAt = &fa
	}
	return resp
}
