package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/pkg/database"
	"github.com/garagepro/garage-backend-go/internal/pkg/jwt"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveService(tx database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, employeeRepository employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
	}
}

func mapLeaveRequestToResponse(lr leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		EmployeeCode: lr.EmployeeCode,
		LeaveType:    string(lr.LeaveType),
		StartDate:    lr.StartDate.String(),
		EndDate:      lr.EndDate.String(),
		TotalDays:    lr.TotalDays,
		Reason:       lr.Reason,
		Status:       string(lr.Status),
		AdminRemarks: lr.AdminRemarks,
		DecidedBy:    lr.DecidedBy,
		CreatedAt:    lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.DecidedAt != nil {
		decidedAt := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	start, end := req.Range()

	var created leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.IsActive() {
			return employee.ErrEmployeeInactive
		}

		overlap, err := s.LeaveRequestRepository.HasActiveOverlap(ctx, emp.ID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		created, err = s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID: emp.ID,
			LeaveType:  leave.LeaveType(req.LeaveType),
			StartDate:  start,
			EndDate:    end,
			TotalDays:  workday.InclusiveDays(start, end),
			Reason:     strings.TrimSpace(req.Reason),
			Status:     leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapLeaveRequestToResponse(created), nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	lr, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapLeaveRequestToResponse(lr), nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	filter.Normalize()

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, mapLeaveRequestToResponse(lr))
	}

	return leave.ListLeaveResponse{
		Requests:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// ApproveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, leave.StatusApproved)
}

// RejectRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequest, status leave.Status) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decidedBy := jwt.ActorFromContext(ctx)
	lr, err := s.LeaveRequestRepository.Decide(ctx, req.ID, status, req.Remarks, decidedBy)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request decided", "leave_request_id", lr.ID, "employee_id", lr.EmployeeID, "status", lr.Status)
	return mapLeaveRequestToResponse(lr), nil
}
