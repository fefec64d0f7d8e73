package leave

import (
	"context"

	"cloud.google.com/go/civil"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// Decide moves a pending request to approved or rejected. It returns
	// ErrLeaveRequestAlreadyProcessed when the request is no longer pending.
	Decide(ctx context.Context, id string, status Status, remarks *string, decidedBy *string) (LeaveRequest, error)

	// GetApprovedInRange returns approved requests overlapping [start, end].
	GetApprovedInRange(ctx context.Context, employeeID string, start, end civil.Date) ([]LeaveRequest, error)

	// HasActiveOverlap reports a pending or approved request overlapping [start, end].
	HasActiveOverlap(ctx context.Context, employeeID string, start, end civil.Date) (bool, error)
}
