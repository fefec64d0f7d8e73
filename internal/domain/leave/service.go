package leave

import "context"

type LeaveService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListRequests(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	ApproveRequest(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)
	RejectRequest(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)
}
