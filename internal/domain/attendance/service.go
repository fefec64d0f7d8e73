package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Scan toggles check-in / check-out for the scanned employee on the current shop day.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetSummary classifies a period and overlays approved leave without persisting anything.
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// ExportAttendance renders the filtered records as an .xlsx workbook.
	ExportAttendance(ctx context.Context, filter AttendanceFilter) ([]byte, error)

	// KioskCode returns the code the kiosk screen should display right now.
	KioskCode(ctx context.Context) (KioskCodeResponse, error)

	// Subscribe streams scan results until ctx is done or cleanup is called.
	Subscribe(ctx context.Context) (<-chan FeedEvent, func())
}
