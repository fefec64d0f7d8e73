package salary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/storage"
	"github.com/jung-kurt/gofpdf"
)

var salaryExportHeaders = []string{
	"Employee Code", "Employee Name", "Period", "Period Start", "Period End",
	"Working Days", "Present", "Late", "Half Day", "Absent", "Incomplete", "Leave",
	"Total Hours", "Pay Type", "Pay Rate",
	"Basic Payment", "Absence Deduction", "Tax Deduction", "Other Deduction", "Total Deductions", "Net Salary",
	"Status", "Payment Date",
}

// ExportSalaries implements salary.SalaryService.
func (s *SalaryServiceImpl) ExportSalaries(ctx context.Context, filter salary.SalaryFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 500

	var records []salary.Salary
	for {
		page, total, err := s.SalaryRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list salaries: %w", err)
		}
		records = append(records, page...)
		if int64(len(records)) >= total || len(page) == 0 {
			break
		}
		filter.Page++
	}
	if len(records) == 0 {
		return nil, salary.ErrNoSalariesToExport
	}

	table, err := spreadsheet.NewTable("Salaries", salaryExportHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}
	for _, r := range records {
		paymentDate := ""
		if r.PaymentDate != nil {
			paymentDate = r.PaymentDate.String()
		}
		if err := table.AddRow(
			deref(r.EmployeeCode), deref(r.EmployeeName), r.PeriodLabel, r.PeriodStart.String(), r.PeriodEnd.String(),
			r.Tally.WorkingDays, r.Tally.Present, r.Tally.Late, r.Tally.HalfDay, r.Tally.Absent, r.Tally.Incomplete, r.Tally.Leave.Total(),
			r.TotalHours.InexactFloat64(), string(r.PayType), r.PayRate.StringFixed(2),
			r.BasicPayment.StringFixed(2), r.AbsenceDeduction.StringFixed(2), r.TaxDeduction.StringFixed(2),
			r.OtherDeduction.StringFixed(2), r.TotalDeductions.StringFixed(2), r.NetSalary.StringFixed(2),
			string(r.Status), paymentDate,
		); err != nil {
			return nil, err
		}
	}

	return table.Bytes()
}

// Payslip implements salary.SalaryService. Paid salaries are served from the
// archive when a copy was stored.
func (s *SalaryServiceImpl) Payslip(ctx context.Context, id string) ([]byte, error) {
	r, err := s.SalaryRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status == salary.StatusPaid && s.archive != nil {
		data, err := s.archivedPayslip(ctx, r)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, storage.ErrFileNotFound) {
			slog.Warn("failed to read archived payslip", "salary_id", r.ID, "error", err)
		}
	}

	return renderPayslip(r)
}

func payslipKey(r salary.Salary) string {
	return fmt.Sprintf("payslips/%s_%s/%s.pdf", r.PeriodStart, r.PeriodEnd, r.EmployeeID)
}

func (s *SalaryServiceImpl) archivePayslip(ctx context.Context, r salary.Salary) error {
	if s.archive == nil {
		return nil
	}

	data, err := renderPayslip(r)
	if err != nil {
		return err
	}
	key, err := s.archive.Upload(ctx, bytes.NewReader(data), payslipKey(r), "application/pdf")
	if err != nil {
		return fmt.Errorf("failed to store payslip: %w", err)
	}

	slog.Info("payslip archived", "salary_id", r.ID, "key", key)
	return nil
}

func (s *SalaryServiceImpl) archivedPayslip(ctx context.Context, r salary.Salary) ([]byte, error) {
	rc, err := s.archive.Download(ctx, payslipKey(r))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func renderPayslip(r salary.Salary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", deref(r.EmployeeName), deref(r.EmployeeCode)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s (%s to %s)", r.PeriodLabel, r.PeriodStart, r.PeriodEnd))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", r.Status))
	pdf.Ln(12)

	section := func(title string, rows [][2]string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)
		for _, row := range rows {
			pdf.CellFormat(90, 7, row[0], "B", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, row[1], "B", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	section("Attendance", [][2]string{
		{"Working days", fmt.Sprint(r.Tally.WorkingDays)},
		{"Present", fmt.Sprint(r.Tally.Present)},
		{"Late", fmt.Sprint(r.Tally.Late)},
		{"Half day", fmt.Sprint(r.Tally.HalfDay)},
		{"Absent", fmt.Sprint(r.Tally.Absent)},
		{"Incomplete", fmt.Sprint(r.Tally.Incomplete)},
		{"Leave", fmt.Sprint(r.Tally.Leave.Total())},
		{"Total hours", r.TotalHours.StringFixed(2)},
	})
	section("Earnings and deductions", [][2]string{
		{fmt.Sprintf("Basic payment (%s, rate %s)", r.PayType, r.PayRate.StringFixed(2)), r.BasicPayment.StringFixed(2)},
		{"Absence deduction", r.AbsenceDeduction.StringFixed(2)},
		{"Tax deduction", r.TaxDeduction.StringFixed(2)},
		{"Other deduction", r.OtherDeduction.StringFixed(2)},
		{"Total deductions", r.TotalDeductions.StringFixed(2)},
		{"Net salary", r.NetSalary.StringFixed(2)},
	})

	for _, warning := range r.Warnings {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, "Note: "+warning, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
