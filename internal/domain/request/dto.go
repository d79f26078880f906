package request

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const maxReasonLength = 1000

// ========================================
// CREATE DTOs
// ========================================

type CreateOvertimeRequest struct {
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Reason        string `json:"reason"`

	startAt time.Time
	endAt   time.Time
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, err := bizday.ParseInstant(r.StartDatetime)
	if err != nil {
		errs.Add("start_datetime", "start_datetime must be an ISO8601 timestamp")
	}
	end, err := bizday.ParseInstant(r.EndDatetime)
	if err != nil {
		errs.Add("end_datetime", "end_datetime must be an ISO8601 timestamp")
	}
	if len(errs) == 0 && !start.Before(end) {
		errs.Add("end_datetime", "end_datetime must be after start_datetime")
	}
	if len(r.Reason) > maxReasonLength {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	r.startAt, r.endAt = start, end
	return errs.Err()
}

// Window is only meaningful after a successful Validate.
func (r *CreateOvertimeRequest) Window() (time.Time, time.Time) {
	return r.startAt, r.endAt
}

type CreateLeaveRequest struct {
	DateFrom  string `json:"date_from"` // YYYY-MM-DD
	DateTo    string `json:"date_to"`   // YYYY-MM-DD
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason"`

	from      time.Time
	to        time.Time
	leaveType LeaveType
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add("date_to", "date_to must not be before date_from")
	}

	lt, err := ParseLeaveType(r.LeaveType)
	if err != nil {
		errs.Add("leave_type", err.Error())
	}
	if len(r.Reason) > maxReasonLength {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	r.from, r.to, r.leaveType = from, to, lt
	return errs.Err()
}

// Period is only meaningful after a successful Validate.
func (r *CreateLeaveRequest) Period() (time.Time, time.Time, LeaveType) {
	return r.from, r.to, r.leaveType
}

// ========================================
// LIST DTOs
// ========================================

type ListRequestsQuery struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	Me     bool   `json:"me"`
}

// Filter validates the query and converts it to a repository filter
// without an employee restriction.
func (q ListRequestsQuery) Filter() (ListFilter, error) {
	var (
		errs   validator.ValidationErrors
		filter ListFilter
	)

	if !validator.IsEmpty(q.Status) {
		status, err := ParseStatus(q.Status)
		if err != nil {
			errs.Add("status", err.Error())
		} else {
			filter.Status = &status
		}
	}
	if !validator.IsEmpty(q.Kind) {
		kind, err := ParseKind(q.Kind)
		if err != nil {
			errs.Add("kind", err.Error())
		} else {
			filter.Kind = &kind
		}
	}

	return filter, errs.Err()
}

// ========================================
// RESPONSE DTOs
// ========================================

type RequestResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	EmployeeID string  `json:"employee_id"`
	ApproverID *string `json:"approver_id"`

	StartDatetime   *string `json:"start_datetime,omitempty"`
	EndDatetime     *string `json:"end_datetime,omitempty"`
	OvertimeMinutes *int    `json:"overtime_minutes,omitempty"`

	DateFrom  *string `json:"date_from,omitempty"`
	DateTo    *string `json:"date_to,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
	LeaveDays *int    `json:"leave_days,omitempty"`

	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
	DecidedAt *string `json:"decided_at"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListRequestsResponse struct {
	Value []RequestResponse `json:"value"`
	Count int               `json:"count"`
}

func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:         r.ID,
		Kind:       string(r.Kind),
		EmployeeID: r.EmployeeID,
		ApproverID: r.ApproverID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		DecidedAt:  formatInstant(r.DecidedAt),
		CreatedAt:  r.CreatedAt.In(bizday.Location).Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.In(bizday.Location).Format(time.RFC3339),
	}

	switch r.Kind {
	case KindOvertime:
		minutes := r.OvertimeMinutes()
		resp.StartDatetime = formatInstant(r.StartAt)
		resp.EndDatetime = formatInstant(r.EndAt)
		resp.OvertimeMinutes = &minutes
	case KindLeave:
		days := r.LeaveDays()
		resp.DateFrom = formatDate(r.DateFrom)
		resp.DateTo = formatDate(r.DateTo)
		resp.LeaveDays = &days
		if r.LeaveType != nil {
			lt := string(*r.LeaveType)
			resp.LeaveType = &lt
		}
	}

	return resp
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(bizday.Location).Format(time.RFC3339)
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := bizday.FormatDate(*t)
	return &s
}
