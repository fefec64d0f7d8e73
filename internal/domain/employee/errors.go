package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrEmployeeInactive        = errors.New("employee is inactive")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrInvalidImportFile       = errors.New("import file must be a valid .xlsx workbook")
)
