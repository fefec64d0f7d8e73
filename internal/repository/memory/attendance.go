package memory

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) CheckIn(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := attendanceKey{employeeID: att.EmployeeID, date: att.Date}
	if id, ok := r.store.attByDay[key]; ok {
		return r.withRef(r.store.attendance[id]), false, nil
	}

	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	now := r.store.now()
	att.CreatedAt, att.UpdatedAt = now, now
	r.store.attendance[att.ID] = att
	r.store.attByDay[key] = att.ID
	return r.withRef(att), true, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, employeeID string, date civil.Date, at time.Time, location *string) (attendance.Attendance, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.attByDay[attendanceKey{employeeID: employeeID, date: date}]
	if !ok {
		return attendance.Attendance{}, false, nil
	}
	att := r.store.attendance[id]
	if att.CheckOut != nil || att.CheckIn == nil || !att.CheckIn.Before(at) {
		return attendance.Attendance{}, false, nil
	}

	att.CheckOut = &at
	att.CheckOutLocation = location
	att.UpdatedAt = r.store.now()
	r.store.attendance[id] = att
	return r.withRef(att), true, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date civil.Date) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.attByDay[attendanceKey{employeeID: employeeID, date: date}]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withRef(r.store.attendance[id]), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	att, ok := r.store.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withRef(att), nil
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, start, end civil.Date) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Attendance
	for _, att := range r.store.attendance {
		if att.EmployeeID == employeeID && !att.Date.Before(start) && !att.Date.After(end) {
			out = append(out, att)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []attendance.Attendance
	for _, att := range r.store.attendance {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && att.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && att.Date.After(*filter.To) {
			continue
		}
		if filter.OpenOnly && att.CheckOut != nil {
			continue
		}
		matched = append(matched, r.withRef(att))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].EmployeeID < matched[j].EmployeeID
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// withRef fills the joined employee columns. Callers hold the store lock.
func (r *attendanceRepository) withRef(att attendance.Attendance) attendance.Attendance {
	att.EmployeeName, att.EmployeeCode = r.store.employeeRef(att.EmployeeID)
	return att
}
