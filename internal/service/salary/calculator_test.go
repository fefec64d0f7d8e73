package salary

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
	attendanceservice "github.com/garagepro/garage-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedEmployee(rate string) employee.Employee {
	return employee.Employee{ID: "emp-1", PayType: employee.PayTypeFixed, PayRate: dec(rate)}
}

func assertNetIdentity(t *testing.T, basic, absence, tax, other, net decimal.Decimal) {
	t.Helper()
	assert.True(t, net.Equal(basic.Sub(absence.Add(tax).Add(other))), "net %s != basic %s - deductions", net, basic)
}

func TestCalculate_FixedNoAttendanceDeductsFullRate(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	summary := attendance.Summary{Tally: attendance.Tally{WorkingDays: 26, Absent: 26}}

	got := calc.Calculate(fixedEmployee("3000000"), summary, decimal.Zero)

	assert.Equal(t, "3000000.00", got.BasicPayment.StringFixed(2))
	assert.True(t, got.AbsenceDeduction.Equal(got.BasicPayment))
	assert.True(t, got.NetSalary.IsZero())
	assert.Empty(t, got.Warnings)
}

func TestCalculate_FixedProRatesAbsenceAndHalfDays(t *testing.T) {
	calc := NewCalculator(dec("0.1"))
	summary := attendance.Summary{Tally: attendance.Tally{
		WorkingDays: 20, Present: 16, Absent: 1, Incomplete: 1, HalfDay: 2,
	}}

	got := calc.Calculate(fixedEmployee("2000"), summary, dec("50"))

	// 2000 * 3 / 20
	assert.Equal(t, "300.00", got.AbsenceDeduction.StringFixed(2))
	assert.Equal(t, "170.00", got.TaxDeduction.StringFixed(2))
	assert.Equal(t, "50.00", got.OtherDeduction.StringFixed(2))
	assert.Equal(t, "520.00", got.TotalDeductions.StringFixed(2))
	assert.Equal(t, "1480.00", got.NetSalary.StringFixed(2))
	assertNetIdentity(t, got.BasicPayment, got.AbsenceDeduction, got.TaxDeduction, got.OtherDeduction, got.NetSalary)
}

func TestCalculate_HourlyUsesWorkedTime(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	emp := employee.Employee{PayType: employee.PayTypeHourly, PayRate: dec("12.50")}
	summary := attendance.Summary{
		Tally:        attendance.Tally{WorkingDays: 5, Present: 2, Absent: 3},
		WorkedMillis: int64((15*time.Hour + 30*time.Minute) / time.Millisecond),
	}

	got := calc.Calculate(emp, summary, decimal.Zero)

	assert.Equal(t, "193.75", got.BasicPayment.StringFixed(2))
	assert.True(t, got.AbsenceDeduction.IsZero())
	assert.Equal(t, "193.75", got.NetSalary.StringFixed(2))
}

func TestCalculate_ClampsNegativeNet(t *testing.T) {
	calc := NewCalculator(decimal.Zero)
	summary := attendance.Summary{Tally: attendance.Tally{WorkingDays: 10, Present: 10}}

	got := calc.Calculate(fixedEmployee("1000"), summary, dec("1500"))

	assert.True(t, got.NetSalary.IsZero())
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "clamped to 0")
	assert.Equal(t, "1500.00", got.TotalDeductions.StringFixed(2))
}

func TestCalculate_NoWorkingDays(t *testing.T) {
	calc := NewCalculator(decimal.Zero)

	got := calc.Calculate(fixedEmployee("1000"), attendance.Summary{}, decimal.Zero)

	assert.True(t, got.AbsenceDeduction.IsZero())
	assert.Equal(t, "1000.00", got.NetSalary.StringFixed(2))
}

func TestRededuct_KeepsTaxAndClamps(t *testing.T) {
	calc := NewCalculator(dec("0.1"))
	stored := salary.Salary{
		BasicPayment:     dec("1000"),
		AbsenceDeduction: dec("100"),
		TaxDeduction:     dec("90"),
	}

	got := calc.Rededuct(stored, dec("50"))
	assert.Equal(t, "90.00", got.TaxDeduction.StringFixed(2))
	assert.Equal(t, "240.00", got.TotalDeductions.StringFixed(2))
	assert.Equal(t, "760.00", got.NetSalary.StringFixed(2))
	assert.Empty(t, got.Warnings)

	got = calc.Rededuct(stored, dec("900"))
	assert.True(t, got.NetSalary.IsZero())
	assert.Len(t, got.Warnings, 1)
}

func TestCalculate_LateShortDayIsDeductedAsHalfDay(t *testing.T) {
	cal, err := workday.NewCalendar("UTC", []time.Weekday{time.Sunday})
	require.NoError(t, err)
	agg := attendanceservice.NewAggregator(cal, 15*time.Minute)
	emp := fixedEmployee("1000")
	emp.ShiftStart, emp.ShiftEnd = workday.Clock{Hour: 9}, workday.Clock{Hour: 17}
	day := civil.Date{Year: 2025, Month: 5, Day: 1}

	net := func(inHour, outHour int) string {
		in := time.Date(2025, 5, 1, inHour, 0, 0, 0, time.UTC)
		out := time.Date(2025, 5, 1, outHour, 0, 0, 0, time.UTC)
		summary, err := agg.Aggregate(emp, day, day, []attendance.Attendance{
			{EmployeeID: emp.ID, Date: day, CheckIn: &in, CheckOut: &out},
		})
		require.NoError(t, err)
		return NewCalculator(decimal.Zero).Calculate(emp, summary, decimal.Zero).NetSalary.StringFixed(2)
	}

	assert.Equal(t, "500.00", net(12, 17), "late arrival working five hours")
	assert.Equal(t, "500.00", net(9, 14), "on time leaving after five hours")
	assert.Equal(t, "1000.00", net(9, 17))
}
