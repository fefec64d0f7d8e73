package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `s.id, s.employee_id, s.period_start, s.period_end, s.period_label,
	s.total_working_days, s.present_days, s.late_days, s.half_days, s.absent_days, s.incomplete_days,
	s.sick_leave_days, s.casual_leave_days, s.annual_leave_days, s.other_leave_days, s.approved_leave_count,
	s.total_hours, s.pay_type, s.pay_rate, s.basic_payment, s.absence_deduction, s.tax_deduction,
	s.other_deduction, s.total_deductions, s.net_salary, s.warnings, s.status, s.payment_date,
	s.generated_by, s.finalized_by, s.finalized_at, s.paid_by, s.created_at, s.updated_at,
	e.full_name, e.employee_code`

const salaryFrom = ` FROM salaries s INNER JOIN employees e ON e.id = s.employee_id`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	t := &s.Tally
	err := row.Scan(
		&s.ID, &s.EmployeeID, &dateCol{dst: &s.PeriodStart}, &dateCol{dst: &s.PeriodEnd}, &s.PeriodLabel,
		&t.WorkingDays, &t.Present, &t.Late, &t.HalfDay, &t.Absent, &t.Incomplete,
		&t.Leave.Sick, &t.Leave.Casual, &t.Leave.Annual, &t.Leave.Other, &t.ApprovedLeaveCount,
		&s.TotalHours, &s.PayType, &s.PayRate, &s.BasicPayment, &s.AbsenceDeduction, &s.TaxDeduction,
		&s.OtherDeduction, &s.TotalDeductions, &s.NetSalary, &s.Warnings, &s.Status, &nullDateCol{dst: &s.PaymentDate},
		&s.GeneratedBy, &s.FinalizedBy, &s.FinalizedAt, &s.PaidBy, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode,
	)
	return s, err
}

func nonNilWarnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

// SaveDraft implements salary.SalaryRepository. The conflict branch only
// fires for drafts, so a locked record makes RETURNING come back empty.
func (r *salaryRepositoryImpl) SaveDraft(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	t := s.Tally

	query := `
		INSERT INTO salaries (
			id, employee_id, period_start, period_end, period_label,
			total_working_days, present_days, late_days, half_days, absent_days, incomplete_days,
			sick_leave_days, casual_leave_days, annual_leave_days, other_leave_days, approved_leave_count,
			total_hours, pay_type, pay_rate, basic_payment, absence_deduction, tax_deduction,
			other_deduction, total_deductions, net_salary, warnings, status, generated_by
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, 'draft', $27
		)
		ON CONFLICT ON CONSTRAINT uk_salary_employee_period DO UPDATE SET
			period_label = EXCLUDED.period_label,
			total_working_days = EXCLUDED.total_working_days,
			present_days = EXCLUDED.present_days,
			late_days = EXCLUDED.late_days,
			half_days = EXCLUDED.half_days,
			absent_days = EXCLUDED.absent_days,
			incomplete_days = EXCLUDED.incomplete_days,
			sick_leave_days = EXCLUDED.sick_leave_days,
			casual_leave_days = EXCLUDED.casual_leave_days,
			annual_leave_days = EXCLUDED.annual_leave_days,
			other_leave_days = EXCLUDED.other_leave_days,
			approved_leave_count = EXCLUDED.approved_leave_count,
			total_hours = EXCLUDED.total_hours,
			pay_type = EXCLUDED.pay_type,
			pay_rate = EXCLUDED.pay_rate,
			basic_payment = EXCLUDED.basic_payment,
			absence_deduction = EXCLUDED.absence_deduction,
			tax_deduction = EXCLUDED.tax_deduction,
			other_deduction = EXCLUDED.other_deduction,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			warnings = EXCLUDED.warnings,
			generated_by = EXCLUDED.generated_by,
			updated_at = NOW()
		WHERE salaries.status = 'draft'
		RETURNING id`

	var id string
	err := q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, dateArg(s.PeriodStart), dateArg(s.PeriodEnd), s.PeriodLabel,
		t.WorkingDays, t.Present, t.Late, t.HalfDay, t.Absent, t.Incomplete,
		t.Leave.Sick, t.Leave.Casual, t.Leave.Annual, t.Leave.Other, t.ApprovedLeaveCount,
		s.TotalHours, s.PayType, s.PayRate, s.BasicPayment, s.AbsenceDeduction, s.TaxDeduction,
		s.OtherDeduction, s.TotalDeductions, s.NetSalary, nonNilWarnings(s.Warnings), s.GeneratedBy,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryLocked
		}
		return salary.Salary{}, fmt.Errorf("failed to save salary draft: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + salaryFrom + ` WHERE s.id = $1`

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary with id %s: %w", id, err)
	}
	return s, nil
}

// GetByEmployeePeriod implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end civil.Date) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + salaryFrom + `
		WHERE s.employee_id = $1 AND s.period_start = $2 AND s.period_end = $3
		FOR UPDATE OF s`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, dateArg(start), dateArg(end)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary for employee %s: %w", employeeID, err)
	}
	return s, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("s.period_end >= $%d", argIdx))
		args = append(args, dateArg(*filter.From))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("s.period_start <= $%d", argIdx))
		args = append(args, dateArg(*filter.To))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM salaries s WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s%s WHERE %s ORDER BY s.period_start DESC, e.employee_code ASC LIMIT $%d OFFSET $%d`,
		salaryColumns, salaryFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	salaries := []salary.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return salaries, total, nil
}

// UpdateStatus implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdateStatus(ctx context.Context, req salary.StatusChange) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{req.ID, req.From, req.To, req.ActorID}
	switch req.To {
	case salary.StatusFinalized:
		query = `
			UPDATE salaries SET status = $3, finalized_by = $4, finalized_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = $2`
	case salary.StatusPaid:
		query = `
			UPDATE salaries SET status = $3, paid_by = $4, payment_date = $5, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		args = append(args, nullDateArg(req.PaymentDate))
	default:
		return salary.Salary{}, salary.ErrInvalidStatusTransition
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to update salary status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, req.ID); err != nil {
			return salary.Salary{}, err
		}
		return salary.Salary{}, salary.ErrInvalidStatusTransition
	}

	return r.GetByID(ctx, req.ID)
}

// UpdateDeductions implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdateDeductions(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries
		SET tax_deduction = $2, other_deduction = $3, total_deductions = $4, net_salary = $5,
			warnings = $6, updated_at = NOW()
		WHERE id = $1 AND status = 'draft'`

	tag, err := q.Exec(ctx, query, s.ID, s.TaxDeduction, s.OtherDeduction, s.TotalDeductions, s.NetSalary, nonNilWarnings(s.Warnings))
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to update salary deductions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return salary.Salary{}, err
		}
		return salary.Salary{}, salary.ErrSalaryLocked
	}

	return r.GetByID(ctx, s.ID)
}

// DeleteDraft implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) DeleteDraft(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return salary.ErrSalaryLocked
	}
	return nil
}
