package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SubmitPunch(w http.ResponseWriter, r *http.Request)
	ListPunches(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetWeeklySummary(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SubmitPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SubmitPunch(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// ListPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPunches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := attendance.ListPunchesRequest{
		From:       q.Get("from"),
		To:         q.Get("to"),
		EmployeeID: queryPtr(r, "employee_id"),
	}

	result, err := h.attendanceService.ListPunches(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := attendance.SummaryRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Filter: employeeFilterFromQuery(r),
	}

	result, err := h.attendanceService.GetSummary(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.PeriodSummaryRequest{
		Date:   r.URL.Query().Get("date"),
		Filter: employeeFilterFromQuery(r),
	}

	result, err := h.attendanceService.GetWeeklySummary(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.PeriodSummaryRequest{
		Date:   r.URL.Query().Get("date"),
		Filter: employeeFilterFromQuery(r),
	}

	result, err := h.attendanceService.GetMonthlySummary(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func employeeFilterFromQuery(r *http.Request) employee.Filter {
	return employee.Filter{
		DepartmentID: queryPtr(r, "department"),
		PositionID:   queryPtr(r, "position"),
		EmployeeCode: queryPtr(r, "employee_code"),
		EmployeeID:   queryPtr(r, "employee_id"),
	}
}

// queryPtr returns nil when the parameter is absent
func queryPtr(r *http.Request, key string) *string {
	q := r.URL.Query()
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}
