package salary

import (
	"testing"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusFinalized, true},
		{StatusFinalized, StatusPaid, true},
		{StatusDraft, StatusPaid, false},
		{StatusPaid, StatusFinalized, false},
		{StatusFinalized, StatusDraft, false},
		{StatusPaid, StatusPaid, false},
		{StatusDraft, StatusDraft, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStatus_IsLocked(t *testing.T) {
	assert.False(t, StatusDraft.IsLocked())
	assert.True(t, StatusFinalized.IsLocked())
	assert.True(t, StatusPaid.IsLocked())
}

func TestGenerateSalaryRequest_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-5)
	req := GenerateSalaryRequest{
		PeriodRequest:  attendance.PeriodRequest{EmployeeID: "e-1", StartDate: "2025-05-31", EndDate: "2025-05-01"},
		OtherDeduction: &neg,
	}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "endDate")
	assert.Contains(t, fields, "otherDeduction")
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	date := "2025-06-05"
	paid := UpdateStatusRequest{ID: "s-1", Status: "paid", PaymentDate: &date}
	require.NoError(t, paid.Validate())
	require.NotNil(t, paid.ParsedPaymentDate())
	assert.Equal(t, "2025-06-05", paid.ParsedPaymentDate().String())

	early := UpdateStatusRequest{ID: "s-1", Status: "finalized", PaymentDate: &date}
	assert.Error(t, early.Validate())

	unknown := UpdateStatusRequest{ID: "s-1", Status: "cancelled"}
	assert.Error(t, unknown.Validate())
}
