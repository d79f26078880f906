package request

import "errors"

var (
	ErrRequestNotFound        = errors.New("request not found")
	ErrInvalidStateTransition = errors.New("request is no longer pending")
	ErrForbidden              = errors.New("not allowed to act on this request")
	ErrInvalidKind            = errors.New("invalid request kind: allowed overtime, leave")
	ErrInvalidStatus          = errors.New("invalid status: allowed PENDING, APPROVED, REJECTED, CANCELED")
	ErrInvalidLeaveType       = errors.New("invalid leave type: allowed ANNUAL, SICK, OTHER")
	ErrInvalidAction          = errors.New("invalid action: allowed approve, reject, cancel")
)
