package employee

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Import columns, matched against normalized header names.
var requiredImportColumns = []string{"employeecode", "fullname", "position", "paytype", "payrate", "shiftstart", "shiftend"}

// ImportEmployees implements employee.EmployeeService. Rows are created one by
// one; a bad row is reported and does not stop the rest.
func (s *EmployeeServiceImpl) ImportEmployees(ctx context.Context, r io.Reader) (employee.ImportEmployeesResponse, error) {
	rows, err := spreadsheet.ReadFirstSheet(r)
	if err != nil {
		slog.Warn("rejected employee import", "error", err)
		return employee.ImportEmployeesResponse{}, employee.ErrInvalidImportFile
	}

	idx := spreadsheet.HeaderIndex(rows[0])
	var missing validator.ValidationErrors
	for _, col := range requiredImportColumns {
		if _, ok := idx[col]; !ok {
			missing.Add(col, "column is missing from the header row")
		}
	}
	if err := missing.Err(); err != nil {
		return employee.ImportEmployeesResponse{}, err
	}

	col := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok {
			return ""
		}
		return spreadsheet.Cell(row, i)
	}
	optional := func(row []string, name string) *string {
		v := col(row, name)
		if v == "" {
			return nil
		}
		return &v
	}

	resp := employee.ImportEmployeesResponse{Failed: []employee.ImportRowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		req := employee.CreateEmployeeRequest{
			EmployeeCode: col(row, "employeecode"),
			FullName:     col(row, "fullname"),
			Email:        optional(row, "email"),
			PhoneNumber:  optional(row, "phonenumber"),
			Address:      optional(row, "address"),
			Position:     col(row, "position"),
			PayType:      col(row, "paytype"),
			ShiftStart:   col(row, "shiftstart"),
			ShiftEnd:     col(row, "shiftend"),
		}
		rate, err := decimal.NewFromString(col(row, "payrate"))
		if err != nil {
			resp.Failed = append(resp.Failed, employee.ImportRowError{
				Row:     rowNum,
				Message: "invalid row",
				Details: map[string]string{"payRate": "payRate must be a number"},
			})
			continue
		}
		req.PayRate = rate

		if _, err := s.CreateEmployee(ctx, req); err != nil {
			resp.Failed = append(resp.Failed, importRowError(rowNum, err))
			continue
		}
		resp.Created++
	}

	slog.Info("employee import finished", "created", resp.Created, "failed", len(resp.Failed))
	return resp, nil
}

func importRowError(row int, err error) employee.ImportRowError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return employee.ImportRowError{Row: row, Message: "invalid row", Details: verrs.ToMap()}
	}
	return employee.ImportRowError{Row: row, Message: err.Error()}
}

func isBlankRow(row []string) bool {
	for i := range row {
		if spreadsheet.Cell(row, i) != "" {
			return false
		}
	}
	return true
}
