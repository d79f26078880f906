package request

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

type RequestService interface {
	CreateOvertime(ctx context.Context, caller *user.Caller, req CreateOvertimeRequest) (RequestResponse, error)
	CreateLeave(ctx context.Context, caller *user.Caller, req CreateLeaveRequest) (RequestResponse, error)

	// List returns the caller's own requests, or every request for admins
	List(ctx context.Context, caller *user.Caller, query ListRequestsQuery) (ListRequestsResponse, error)
	Get(ctx context.Context, caller *user.Caller, id string) (RequestResponse, error)

	// Transition approves, rejects or cancels a pending request
	Transition(ctx context.Context, caller *user.Caller, id string, action Action) (RequestResponse, error)
}
