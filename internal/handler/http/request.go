package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	CreateOvertime(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
	}
}

// CreateOvertime implements RequestHandler.
func (h *requestHandlerImpl) CreateOvertime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode overtime request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.CreateOvertime(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// CreateLeave implements RequestHandler.
func (h *requestHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode leave request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.CreateLeave(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// List implements RequestHandler.
func (h *requestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	me, _ := strconv.ParseBool(q.Get("me"))
	query := request.ListRequestsQuery{
		Status: q.Get("status"),
		Kind:   q.Get("kind"),
		Me:     me,
	}

	result, err := h.requestService.List(r.Context(), middleware.CallerFromContext(r.Context()), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements RequestHandler.
func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.Get(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements RequestHandler.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, request.ActionApprove, "Request approved")
}

// Reject implements RequestHandler.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, request.ActionReject, "Request rejected")
}

// Cancel implements RequestHandler.
func (h *requestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, request.ActionCancel, "Request canceled")
}

func (h *requestHandlerImpl) transition(w http.ResponseWriter, r *http.Request, action request.Action, message string) {
	result, err := h.requestService.Transition(r.Context(), middleware.CallerFromContext(r.Context()), chi.URLParam(r, "id"), action)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
