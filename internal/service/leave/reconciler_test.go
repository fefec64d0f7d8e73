package leave

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func may(day int) civil.Date {
	return civil.Date{Year: 2025, Month: 5, Day: day}
}

func summaryOf(statuses ...attendance.DayStatus) attendance.Summary {
	s := attendance.Summary{EmployeeID: "emp-1", Start: may(1), End: may(len(statuses))}
	for i, st := range statuses {
		s.Days = append(s.Days, attendance.DayClassification{Date: may(i + 1), Status: st})
	}
	s.Tally = attendance.NewTally(s.Days)
	return s
}

func approvedLeave(t leave.LeaveType, start, end int) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:        "leave-" + string(t),
		LeaveType: t,
		StartDate: may(start),
		EndDate:   may(end),
		Status:    leave.StatusApproved,
	}
}

func TestReconcile_ApprovedLeaveReplacesAbsence(t *testing.T) {
	in := summaryOf(attendance.DayAbsent, attendance.DayAbsent, attendance.DayAbsent)

	out := NewReconciler().Reconcile(in, []leave.LeaveRequest{approvedLeave(leave.LeaveTypeSick, 1, 3)})

	require.Len(t, out.Days, 3)
	for _, d := range out.Days {
		assert.Equal(t, attendance.DayLeave, d.Status)
		require.NotNil(t, d.LeaveType)
		assert.Equal(t, leave.LeaveTypeSick, *d.LeaveType)
	}
	assert.Equal(t, 0, out.Tally.Absent)
	assert.Equal(t, 3, out.Tally.Leave.Sick)
	assert.Equal(t, 1, out.Tally.ApprovedLeaveCount)
	assert.Equal(t, 3, in.Tally.Absent, "input must stay untouched")
}

func TestReconcile_WorkedDaysKeepTheirStatus(t *testing.T) {
	in := summaryOf(attendance.DayPresent, attendance.DayHalf, attendance.DayLate, attendance.DayIncomplete, attendance.DayOff)

	out := NewReconciler().Reconcile(in, []leave.LeaveRequest{approvedLeave(leave.LeaveTypeAnnual, 1, 5)})

	assert.Equal(t, attendance.DayPresent, out.Days[0].Status)
	assert.Equal(t, attendance.DayHalf, out.Days[1].Status)
	assert.Equal(t, attendance.DayLate, out.Days[2].Status)
	assert.Equal(t, attendance.DayIncomplete, out.Days[3].Status)
	assert.Equal(t, attendance.DayOff, out.Days[4].Status)
	assert.Equal(t, 0, out.Tally.Leave.Total())
	assert.Equal(t, 1, out.Tally.ApprovedLeaveCount)
}

func TestReconcile_IgnoresPendingAndRejected(t *testing.T) {
	in := summaryOf(attendance.DayAbsent, attendance.DayAbsent)
	pending := approvedLeave(leave.LeaveTypeCasual, 1, 1)
	pending.Status = leave.StatusPending
	rejected := approvedLeave(leave.LeaveTypeOther, 2, 2)
	rejected.Status = leave.StatusRejected

	out := NewReconciler().Reconcile(in, []leave.LeaveRequest{pending, rejected})

	assert.Equal(t, 2, out.Tally.Absent)
	assert.Equal(t, 0, out.Tally.ApprovedLeaveCount)
}

func TestReconcile_MixedTypesKeepTotalsConsistent(t *testing.T) {
	in := summaryOf(attendance.DayAbsent, attendance.DayAbsent, attendance.DayPresent, attendance.DayAbsent)

	out := NewReconciler().Reconcile(in, []leave.LeaveRequest{
		approvedLeave(leave.LeaveTypeCasual, 1, 1),
		approvedLeave(leave.LeaveTypeAnnual, 2, 3),
	})

	tally := out.Tally
	assert.Equal(t, 1, tally.Leave.Casual)
	assert.Equal(t, 1, tally.Leave.Annual)
	assert.Equal(t, 1, tally.Absent)
	assert.Equal(t, 2, tally.ApprovedLeaveCount)
	assert.Equal(t, tally.WorkingDays,
		tally.Present+tally.Late+tally.HalfDay+tally.Absent+tally.Incomplete+tally.Leave.Total())
}

func TestReconcile_ShortWorkedDayIsNotLeave(t *testing.T) {
	in := summaryOf(attendance.DayAbsent, attendance.DayAbsent)
	checkIn := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(2 * time.Hour)
	in.Days[0].CheckIn, in.Days[0].CheckOut, in.Days[0].Hours = &checkIn, &checkOut, 2
	in.WorkedMillis = (2 * time.Hour).Milliseconds()

	out := NewReconciler().Reconcile(in, []leave.LeaveRequest{approvedLeave(leave.LeaveTypeSick, 1, 2)})

	assert.Equal(t, attendance.DayAbsent, out.Days[0].Status)
	assert.Nil(t, out.Days[0].LeaveType)
	assert.Equal(t, attendance.DayLeave, out.Days[1].Status)
	assert.Equal(t, 1, out.Tally.Absent)
	assert.Equal(t, 1, out.Tally.Leave.Sick)
	assert.Equal(t, in.WorkedMillis, out.WorkedMillis)
}
