package employee

import (
	"testing"

	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeCode: "MECH-001",
		FullName:     "Rina Mechanic",
		Position:     "Mechanic",
		PayType:      "fixed",
		PayRate:      decimal.NewFromInt(3000),
		ShiftStart:   "09:00",
		ShiftEnd:     "17:00",
	}
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateEmployeeRequest)
		field  string
	}{
		{"missing code", func(r *CreateEmployeeRequest) { r.EmployeeCode = "" }, "employeeCode"},
		{"bad code", func(r *CreateEmployeeRequest) { r.EmployeeCode = "has space" }, "employeeCode"},
		{"missing name", func(r *CreateEmployeeRequest) { r.FullName = " " }, "fullName"},
		{"bad pay type", func(r *CreateEmployeeRequest) { r.PayType = "weekly" }, "payType"},
		{"negative rate", func(r *CreateEmployeeRequest) { r.PayRate = decimal.NewFromInt(-1) }, "payRate"},
		{"bad shift clock", func(r *CreateEmployeeRequest) { r.ShiftStart = "9am" }, "shiftStart"},
		{"shift ends before start", func(r *CreateEmployeeRequest) { r.ShiftEnd = "08:00" }, "shiftEnd"},
		{"bad email", func(r *CreateEmployeeRequest) { s := "nope"; r.Email = &s }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validCreateRequest()
			tt.mutate(&r)
			err := r.Validate()
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestEmployeeFilter_Normalize(t *testing.T) {
	f := EmployeeFilter{Limit: 1000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
}
