package memory

import (
	"context"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = leave.StatusPending
	}
	now := r.store.now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.store.leaves[req.ID] = req
	return r.withRef(req), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withRef(req), nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []leave.LeaveRequest
	for _, req := range r.store.leaves {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && string(req.LeaveType) != *filter.LeaveType {
			continue
		}
		if filter.From != nil && req.EndDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && req.StartDate.After(*filter.To) {
			continue
		}
		matched = append(matched, r.withRef(req))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.Status, remarks *string, decidedBy *string) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := r.store.now()
	req.Status = status
	req.AdminRemarks = remarks
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	req.UpdatedAt = now
	r.store.leaves[id] = req
	return r.withRef(req), nil
}

func (r *leaveRequestRepository) GetApprovedInRange(ctx context.Context, employeeID string, start, end civil.Date) ([]leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []leave.LeaveRequest
	for _, req := range r.store.leaves {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved && req.Overlaps(start, end) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *leaveRequestRepository) HasActiveOverlap(ctx context.Context, employeeID string, start, end civil.Date) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, req := range r.store.leaves {
		if req.EmployeeID != employeeID || req.Status == leave.StatusRejected {
			continue
		}
		if req.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) withRef(req leave.LeaveRequest) leave.LeaveRequest {
	req.EmployeeName, req.EmployeeCode = r.store.employeeRef(req.EmployeeID)
	return req
}
