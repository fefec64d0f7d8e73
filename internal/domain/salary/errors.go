package salary

import "errors"

var (
	ErrSalaryNotFound          = errors.New("salary record not found")
	ErrInvalidStatusTransition = errors.New("invalid salary status transition")
	ErrSalaryLocked            = errors.New("salary record is finalized and can no longer change")
	ErrNoSalariesToExport      = errors.New("no salary records match the export filter")
)
