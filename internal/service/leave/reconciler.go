package leave

import (
	"sort"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/domain/leave"
)

// Reconciler overlays approved leave onto a classified period.
type Reconciler struct{}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile turns absent working days covered by approved leave into leave
// days tagged with the leave type. Days with a check-in keep their
// classification, including short days paid as absent. The input summary is
// not modified.
func (r *Reconciler) Reconcile(summary attendance.Summary, requests []leave.LeaveRequest) attendance.Summary {
	approved := make([]leave.LeaveRequest, 0, len(requests))
	for _, req := range requests {
		if req.Status == leave.StatusApproved && req.Overlaps(summary.Start, summary.End) {
			approved = append(approved, req)
		}
	}
	// Earliest request wins when two approved requests cover the same day.
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].StartDate.Before(approved[j].StartDate)
	})

	out := summary
	out.Days = make([]attendance.DayClassification, len(summary.Days))
	copy(out.Days, summary.Days)

	for i, day := range out.Days {
		if day.Status != attendance.DayAbsent || day.CheckIn != nil {
			continue
		}
		for _, req := range approved {
			if req.Covers(day.Date) {
				lt := req.LeaveType
				out.Days[i].Status = attendance.DayLeave
				out.Days[i].LeaveType = &lt
				break
			}
		}
	}

	out.Tally = attendance.NewTally(out.Days)
	out.Tally.ApprovedLeaveCount = len(approved)
	return out
}
