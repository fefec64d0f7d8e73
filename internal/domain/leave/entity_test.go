package leave

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func may(day int) civil.Date {
	return civil.Date{Year: 2025, Month: 5, Day: day}
}

func TestLeaveRequest_CoversAndOverlaps(t *testing.T) {
	l := LeaveRequest{StartDate: may(1), EndDate: may(3)}

	assert.True(t, l.Covers(may(1)))
	assert.True(t, l.Covers(may(3)))
	assert.False(t, l.Covers(may(4)))

	assert.True(t, l.Overlaps(may(3), may(10)))
	assert.True(t, l.Overlaps(civil.Date{Year: 2025, Month: 4, Day: 20}, may(1)))
	assert.False(t, l.Overlaps(may(4), may(10)))
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	req := CreateLeaveRequest{EmployeeID: "e-1", LeaveType: "sick", StartDate: "2025-05-01", EndDate: "2025-05-03"}
	require.NoError(t, req.Validate())
	start, end := req.Range()
	assert.Equal(t, may(1), start)
	assert.Equal(t, may(3), end)

	reversed := CreateLeaveRequest{EmployeeID: "e-1", LeaveType: "annual", StartDate: "2025-05-03", EndDate: "2025-05-01"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, reversed.Validate(), &verrs)
	assert.Equal(t, "endDate must be on or after startDate", verrs.ToMap()["endDate"])

	badType := CreateLeaveRequest{EmployeeID: "e-1", LeaveType: "vacation", StartDate: "2025-05-01", EndDate: "2025-05-01"}
	require.ErrorAs(t, badType.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "leaveType")
}
