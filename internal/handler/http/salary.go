package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/garagepro/garage-backend-go/internal/domain/salary"
	"github.com/garagepro/garage-backend-go/internal/handler/http/response"
	"github.com/garagepro/garage-backend-go/internal/pkg/spreadsheet"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	UpdateDeductions(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// Generate implements SalaryHandler.
func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salaryService.GenerateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary generated successfully", result)
}

// Get implements SalaryHandler.
func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.GetSalary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements SalaryHandler.
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := salaryFilter(w, r)
	if !ok {
		return
	}
	filter.Page, filter.Limit = pagination(r)

	results, err := h.salaryService.ListSalaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateStatus implements SalaryHandler.
func (h *salaryHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req salary.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSalaryStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.salaryService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary status updated successfully", result)
}

// UpdateDeductions implements SalaryHandler.
func (h *salaryHandlerImpl) UpdateDeductions(w http.ResponseWriter, r *http.Request) {
	var req salary.UpdateDeductionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSalaryDeductions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.salaryService.UpdateDeductions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary deductions updated successfully", result)
}

// Delete implements SalaryHandler.
func (h *salaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.salaryService.DeleteSalary(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary draft deleted successfully", nil)
}

// Export implements SalaryHandler.
func (h *salaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, ok := salaryFilter(w, r)
	if !ok {
		return
	}

	data, err := h.salaryService.ExportSalaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, spreadsheet.ContentType, exportFilename("salaries", ".xlsx", filter.From, filter.To), data)
}

// Payslip implements SalaryHandler.
func (h *salaryHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.salaryService.Payslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/pdf", "payslip_"+id+".pdf", data)
}

func salaryFilter(w http.ResponseWriter, r *http.Request) (salary.SalaryFilter, bool) {
	var errs validator.ValidationErrors
	filter := salary.SalaryFilter{
		EmployeeID: optionalString(r, "employeeId"),
		Status:     optionalString(r, "status"),
		From:       optionalDate(r, "from", &errs),
		To:         optionalDate(r, "to", &errs),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return filter, false
	}
	return filter, true
}
