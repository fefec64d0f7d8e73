package salary

import (
	"context"

	"cloud.google.com/go/civil"
)

type SalaryRepository interface {
	// SaveDraft inserts the record or replaces an existing draft for the same
	// employee and period. It returns ErrSalaryLocked when that record is no
	// longer a draft.
	SaveDraft(ctx context.Context, s Salary) (Salary, error)

	GetByID(ctx context.Context, id string) (Salary, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end civil.Date) (Salary, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, int64, error)

	// UpdateStatus moves the record from one status to the next. It returns
	// ErrInvalidStatusTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, req StatusChange) (Salary, error)

	// UpdateDeductions rewrites the money columns of a draft.
	UpdateDeductions(ctx context.Context, s Salary) (Salary, error)

	// DeleteDraft removes a draft. Finalized and paid records return ErrSalaryLocked.
	DeleteDraft(ctx context.Context, id string) error
}

// StatusChange is a conditional update from one status to the next.
type StatusChange struct {
	ID          string
	From        Status
	To          Status
	PaymentDate *civil.Date
	ActorID     *string
}
