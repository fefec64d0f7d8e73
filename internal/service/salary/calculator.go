package salary

import (
	"fmt"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var (
	half       = decimal.NewFromFloat(0.5)
	millisHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))
)

// Calculator turns a reconciled period into money figures.
type Calculator struct {
	taxRate decimal.Decimal
}

func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{taxRate: taxRate}
}

// Calculate applies the pay rules:
//
//	fixed:  basic = payRate, absence = payRate * (absent + incomplete + 0.5*halfDay) / workingDays
//	hourly: basic = hours * payRate, absence = 0
//	tax   = taxRate * max(0, basic - absence)
//	net   = basic - (absence + tax + other), clamped at zero with a warning
func (c *Calculator) Calculate(emp employee.Employee, summary attendance.Summary, other decimal.Decimal) salary.Calculation {
	var calc salary.Calculation

	switch emp.PayType {
	case employee.PayTypeHourly:
		calc.BasicPayment = decimal.NewFromInt(summary.WorkedMillis).Mul(emp.PayRate).Div(millisHour).Round(2)
		calc.AbsenceDeduction = decimal.Zero
	default:
		calc.BasicPayment = emp.PayRate.Round(2)
		calc.AbsenceDeduction = absenceDeduction(emp.PayRate, summary.Tally)
	}

	taxable := calc.BasicPayment.Sub(calc.AbsenceDeduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	calc.TaxDeduction = c.taxRate.Mul(taxable).Round(2)
	calc.OtherDeduction = other.Round(2)

	return settle(calc)
}

// Rededuct replaces the other deduction on a stored record. Basic pay,
// absence and tax keep their generated values.
func (c *Calculator) Rededuct(s salary.Salary, other decimal.Decimal) salary.Calculation {
	return settle(salary.Calculation{
		BasicPayment:     s.BasicPayment,
		AbsenceDeduction: s.AbsenceDeduction,
		TaxDeduction:     s.TaxDeduction,
		OtherDeduction:   other.Round(2),
	})
}

// settle totals the deductions and clamps a negative net at zero.
func settle(calc salary.Calculation) salary.Calculation {
	calc.TotalDeductions = calc.AbsenceDeduction.Add(calc.TaxDeduction).Add(calc.OtherDeduction)

	calc.NetSalary = calc.BasicPayment.Sub(calc.TotalDeductions)
	if calc.NetSalary.IsNegative() {
		calc.Warnings = append(calc.Warnings, fmt.Sprintf(
			"deductions %s exceed basic payment %s; net salary clamped to 0",
			calc.TotalDeductions.StringFixed(2), calc.BasicPayment.StringFixed(2)))
		calc.NetSalary = decimal.Zero
	}
	return calc
}

func absenceDeduction(rate decimal.Decimal, t attendance.Tally) decimal.Decimal {
	if t.WorkingDays == 0 {
		return decimal.Zero
	}
	units := decimal.NewFromInt(int64(t.Absent + t.Incomplete)).Add(half.Mul(decimal.NewFromInt(int64(t.HalfDay))))
	// Multiply before dividing so a fully absent period deducts exactly the rate.
	return rate.Mul(units).Div(decimal.NewFromInt(int64(t.WorkingDays))).Round(2)
}
