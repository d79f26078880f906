package request

import (
	"strings"
	"time"
)

type Kind string

const (
	KindOvertime Kind = "overtime"
	KindLeave    Kind = "leave"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindOvertime:
		return KindOvertime, nil
	case KindLeave:
		return KindLeave, nil
	}
	return "", ErrInvalidKind
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return status, nil
	}
	return "", ErrInvalidStatus
}

type LeaveType string

const (
	LeaveAnnual LeaveType = "ANNUAL"
	LeaveSick   LeaveType = "SICK"
	LeaveOther  LeaveType = "OTHER"
)

// ParseLeaveType defaults a blank value to ANNUAL.
func ParseLeaveType(s string) (LeaveType, error) {
	lt := LeaveType(strings.ToUpper(strings.TrimSpace(s)))
	switch lt {
	case "":
		return LeaveAnnual, nil
	case LeaveAnnual, LeaveSick, LeaveOther:
		return lt, nil
	}
	return "", ErrInvalidLeaveType
}

// Action is a decision applied to a pending request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	case ActionCancel:
		return ActionCancel, nil
	}
	return "", ErrInvalidAction
}

// Target returns the status a pending request moves to.
func (a Action) Target() Status {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	default:
		return StatusCanceled
	}
}

// IsDecision reports whether the action records an approver.
func (a Action) IsDecision() bool {
	return a == ActionApprove || a == ActionReject
}

// Request is an overtime or leave application. Requests are never deleted;
// only a PENDING request may change status.
type Request struct {
	ID         string
	Kind       Kind
	EmployeeID string
	ApproverID *string

	// overtime
	StartAt *time.Time
	EndAt   *time.Time

	// leave
	DateFrom  *time.Time
	DateTo    *time.Time
	LeaveType *LeaveType

	Reason    string
	Status    Status
	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// OvertimeMinutes is the requested overtime length, 0 for leave requests.
func (r Request) OvertimeMinutes() int {
	if r.StartAt == nil || r.EndAt == nil {
		return 0
	}
	return int(r.EndAt.Sub(*r.StartAt) / time.Minute)
}

// LeaveDays counts calendar days, both ends included; 0 for overtime requests.
func (r Request) LeaveDays() int {
	if r.DateFrom == nil || r.DateTo == nil {
		return 0
	}
	return int(r.DateTo.Sub(*r.DateFrom).Hours()/24) + 1
}
