package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/garagepro/garage-backend-go/internal/domain/attendance"
	"github.com/garagepro/garage-backend-go/internal/handler/http/response"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	KioskCode(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Scan implements AttendanceHandler.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.IsCheckIn {
		response.Created(w, result.Message, result)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := attendanceFilter(w, r)
	if !ok {
		return
	}
	filter.Page, filter.Limit = pagination(r)

	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.SummaryRequest{PeriodRequest: attendance.PeriodRequest{
		EmployeeID: query.Get("employeeId"),
		StartDate:  query.Get("startDate"),
		EndDate:    query.Get("endDate"),
	}}

	result, err := h.attendanceService.GetSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, ok := attendanceFilter(w, r)
	if !ok {
		return
	}

	data, err := h.attendanceService.ExportAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, spreadsheet.ContentType, exportFilename("attendance", ".xlsx", filter.From, filter.To), data)
}

// KioskCode implements AttendanceHandler.
func (h *attendanceHandlerImpl) KioskCode(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.KioskCode(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stream implements AttendanceHandler. It writes scans as server-sent events
// until the client disconnects.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.attendanceService.Subscribe(r.Context())
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream encode error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func attendanceFilter(w http.ResponseWriter, r *http.Request) (attendance.AttendanceFilter, bool) {
	var errs validator.ValidationErrors
	filter := attendance.AttendanceFilter{
		EmployeeID: optionalString(r, "employeeId"),
		From:       optionalDate(r, "from", &errs),
		To:         optionalDate(r, "to", &errs),
		OpenOnly:   r.URL.Query().Get("openOnly") == "true",
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return filter, false
	}
	return filter, true
}
