package salary

import "context"

type SalaryService interface {
	// GenerateSalary runs aggregation, leave reconciliation and calculation for
	// one employee and period, and stores the result as a draft.
	GenerateSalary(ctx context.Context, req GenerateSalaryRequest) (SalaryResponse, error)

	// GetSalary returns the stored figures. It never recomputes.
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)

	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (SalaryResponse, error)
	UpdateDeductions(ctx context.Context, req UpdateDeductionsRequest) (SalaryResponse, error)
	DeleteSalary(ctx context.Context, id string) error

	// ExportSalaries renders matching records as an .xlsx workbook.
	ExportSalaries(ctx context.Context, filter SalaryFilter) ([]byte, error)
	// Payslip renders one record as a PDF.
	Payslip(ctx context.Context, id string) ([]byte, error)
}
