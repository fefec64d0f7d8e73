package attendance

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/employee"
	"github.com/garagepro/garage-backend-go/internal/pkg/workday"
)

// Aggregator classifies each day of a period against the employee's shift.
type Aggregator struct {
	calendar *workday.Calendar
	grace    time.Duration
}

func NewAggregator(calendar *workday.Calendar, grace time.Duration) *Aggregator {
	return &Aggregator{calendar: calendar, grace: grace}
}

// Aggregate returns the per-day classification of [start, end] and its tallies.
// records may contain rows outside the range; they are ignored. A completed
// record whose check-out is not after its check-in fails the whole period with
// attendance.ErrInvalidDuration.
func (a *Aggregator) Aggregate(emp employee.Employee, start, end civil.Date, records []attendance.Attendance) (attendance.Summary, error) {
	byDate := make(map[civil.Date]attendance.Attendance, len(records))
	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		byDate[rec.Date] = rec
	}

	summary := attendance.Summary{
		EmployeeID: emp.ID,
		Start:      start,
		End:        end,
	}

	shift := emp.ShiftLength()
	for _, date := range a.calendar.Days(start, end) {
		day := attendance.DayClassification{Date: date, Status: attendance.DayAbsent}

		rec, found := byDate[date]
		if found {
			day.CheckIn = rec.CheckIn
			day.CheckOut = rec.CheckOut
		}

		var worked time.Duration
		completed := false
		if found {
			d, ok := rec.Duration()
			if ok {
				if d <= 0 {
					return attendance.Summary{}, fmt.Errorf("%w: employee %s on %s", attendance.ErrInvalidDuration, emp.ID, date)
				}
				worked = d
				completed = true
				summary.WorkedMillis += d.Milliseconds()
				day.Hours = d.Hours()
			}
		}

		switch {
		case !a.calendar.IsWorkingDay(date):
			day.Status = attendance.DayOff
		case !found || rec.CheckIn == nil:
			day.Status = attendance.DayAbsent
		case !completed:
			day.Status = attendance.DayIncomplete
		default:
			day.Status = a.classify(emp, date, *rec.CheckIn, worked, shift)
		}

		summary.Days = append(summary.Days, day)
	}

	summary.Tally = attendance.NewTally(summary.Days)
	return summary, nil
}

func (a *Aggregator) classify(emp employee.Employee, date civil.Date, checkIn time.Time, worked, shift time.Duration) attendance.DayStatus {
	lateAfter := emp.ShiftStart.On(date, a.calendar.Location()).Add(a.grace)

	// Late only tags a day that already meets the full-shift threshold.
	switch {
	case worked < shift/2:
		return attendance.DayAbsent
	case worked < shift-a.grace:
		return attendance.DayHalf
	case checkIn.After(lateAfter):
		return attendance.DayLate
	default:
		return attendance.DayPresent
	}
}
