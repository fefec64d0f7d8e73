package leave

import (
	"context"
	"testing"

	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/garagepro/garage-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaveService(t *testing.T) (leave.LeaveService, employee.Employee, employee.EmployeeRepository) {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	emp, err := employees.Create(context.Background(), employee.Employee{EmployeeCode: "MEC-001", FullName: "Budi"})
	require.NoError(t, err)

	svc := NewLeaveService(store, memory.NewLeaveRequestRepository(store), employees)
	return svc, emp, employees
}

func TestLeaveService_CreateComputesTotalDays(t *testing.T) {
	svc, emp, _ := newTestLeaveService(t)

	resp, err := svc.CreateRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-03", Reason: " flu ",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "flu", resp.Reason)
	require.NotNil(t, resp.EmployeeCode)
	assert.Equal(t, "MEC-001", *resp.EmployeeCode)
}

func TestLeaveService_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc, emp, _ := newTestLeaveService(t)
	_, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "annual", StartDate: "2025-05-01", EndDate: "2025-05-05"})
	require.NoError(t, err)

	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "casual", StartDate: "2025-05-05", EndDate: "2025-05-06"})

	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_CreateUnknownOrInactiveEmployee(t *testing.T) {
	ctx := context.Background()
	svc, emp, employees := newTestLeaveService(t)

	_, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: "0196a1f2-0000-7000-8000-000000000000", LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	emp.Status = employee.StatusInactive
	_, err = employees.Update(ctx, emp)
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestLeaveService_DecideOnce(t *testing.T) {
	ctx := context.Background()
	svc, emp, _ := newTestLeaveService(t)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-01"})
	require.NoError(t, err)

	remarks := "get well soon"
	approved, err := svc.ApproveRequest(ctx, leave.DecideLeaveRequest{ID: created.ID, Remarks: &remarks})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.NotNil(t, approved.DecidedAt)

	_, err = svc.RejectRequest(ctx, leave.DecideLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.ApproveRequest(ctx, leave.DecideLeaveRequest{ID: "missing"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc, emp, _ := newTestLeaveService(t)
	_, err := svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-01"})
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, leave.CreateLeaveRequest{EmployeeID: emp.ID, LeaveType: "annual", StartDate: "2025-06-01", EndDate: "2025-06-02"})
	require.NoError(t, err)

	annual := "annual"
	resp, err := svc.ListRequests(ctx, leave.LeaveFilter{LeaveType: &annual})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, "2025-06-01", resp.Requests[0].StartDate)
}
