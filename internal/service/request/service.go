package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/google/uuid"
)

type RequestServiceImpl struct {
	request.RequestRepository
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// CreateOvertime implements request.RequestService.
func (s *RequestServiceImpl) CreateOvertime(ctx context.Context, caller *user.Caller, req request.CreateOvertimeRequest) (request.RequestResponse, error) {
	if err := s.canCreate(caller); err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	start, end := req.Window()
	r, err := s.newRequest(caller, request.KindOvertime, req.Reason)
	if err != nil {
		return request.RequestResponse{}, err
	}
	r.StartAt, r.EndAt = &start, &end

	return s.create(ctx, r)
}

// CreateLeave implements request.RequestService.
func (s *RequestServiceImpl) CreateLeave(ctx context.Context, caller *user.Caller, req request.CreateLeaveRequest) (request.RequestResponse, error) {
	if err := s.canCreate(caller); err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	from, to, leaveType := req.Period()
	r, err := s.newRequest(caller, request.KindLeave, req.Reason)
	if err != nil {
		return request.RequestResponse{}, err
	}
	r.DateFrom, r.DateTo, r.LeaveType = &from, &to, &leaveType

	return s.create(ctx, r)
}

// List implements request.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, caller *user.Caller, query request.ListRequestsQuery) (request.ListRequestsResponse, error) {
	if !caller.IsAuthenticated() {
		return request.ListRequestsResponse{}, user.ErrPermissionDenied
	}

	filter, err := query.Filter()
	if err != nil {
		return request.ListRequestsResponse{}, err
	}
	if query.Me || !user.HasPermission(caller.Role, user.PermissionRequestViewAll) {
		employeeID := caller.EmployeeID
		filter.EmployeeID = &employeeID
	}

	requests, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to list requests: %w", err)
	}

	resp := request.ListRequestsResponse{
		Value: make([]request.RequestResponse, 0, len(requests)),
		Count: len(requests),
	}
	for _, r := range requests {
		resp.Value = append(resp.Value, request.NewRequestResponse(r))
	}
	return resp, nil
}

// Get implements request.RequestService.
func (s *RequestServiceImpl) Get(ctx context.Context, caller *user.Caller, id string) (request.RequestResponse, error) {
	if !caller.IsAuthenticated() {
		return request.RequestResponse{}, user.ErrPermissionDenied
	}

	r, err := s.getByID(ctx, id)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if !caller.Owns(r.EmployeeID) && !user.HasPermission(caller.Role, user.PermissionRequestViewAll) {
		return request.RequestResponse{}, request.ErrForbidden
	}

	return request.NewRequestResponse(r), nil
}

// Transition implements request.RequestService. Permission is checked
// before state.
func (s *RequestServiceImpl) Transition(ctx context.Context, caller *user.Caller, id string, action request.Action) (request.RequestResponse, error) {
	if !caller.IsAuthenticated() {
		return request.RequestResponse{}, user.ErrPermissionDenied
	}

	current, err := s.getByID(ctx, id)
	if err != nil {
		return request.RequestResponse{}, err
	}

	switch action {
	case request.ActionApprove, request.ActionReject:
		if !user.HasPermission(caller.Role, user.PermissionRequestDecide) {
			return request.RequestResponse{}, request.ErrForbidden
		}
	case request.ActionCancel:
		if !caller.Owns(current.EmployeeID) && !caller.IsAdmin() {
			return request.RequestResponse{}, request.ErrForbidden
		}
	default:
		return request.RequestResponse{}, request.ErrInvalidAction
	}

	if !current.IsPending() {
		return request.RequestResponse{}, request.ErrInvalidStateTransition
	}

	t := request.Transition{ID: id, To: action.Target(), At: s.now().UTC()}
	if action.IsDecision() {
		approver := caller.EmployeeID
		t.ApproverID = &approver
	}

	// the store re-checks PENDING atomically; a concurrent winner surfaces here
	updated, err := s.RequestRepository.Transition(ctx, t)
	if err != nil {
		if errors.Is(err, request.ErrInvalidStateTransition) || errors.Is(err, request.ErrRequestNotFound) {
			return request.RequestResponse{}, err
		}
		return request.RequestResponse{}, fmt.Errorf("failed to transition request: %w", err)
	}

	return request.NewRequestResponse(updated), nil
}

func (s *RequestServiceImpl) canCreate(caller *user.Caller) error {
	if !caller.IsAuthenticated() {
		return user.ErrPermissionDenied
	}
	if !user.HasPermission(caller.Role, user.PermissionRequestCreate) {
		return user.ErrInsufficientPermission
	}
	return nil
}

func (s *RequestServiceImpl) newRequest(caller *user.Caller, kind request.Kind, reason string) (request.Request, error) {
	id, err := s.newID()
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to generate request id: %w", err)
	}

	now := s.now().UTC()
	return request.Request{
		ID:         id.String(),
		Kind:       kind,
		EmployeeID: caller.EmployeeID,
		Reason:     reason,
		Status:     request.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (s *RequestServiceImpl) create(ctx context.Context, r request.Request) (request.RequestResponse, error) {
	created, err := s.RequestRepository.Create(ctx, r)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	return request.NewRequestResponse(created), nil
}

func (s *RequestServiceImpl) getByID(ctx context.Context, id string) (request.Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return request.Request{}, request.ErrRequestNotFound
	}

	r, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return request.Request{}, err
		}
		return request.Request{}, fmt.Errorf("failed to get request by ID: %w", err)
	}
	return r, nil
}

func NewRequestService(requestRepo request.RequestRepository) request.RequestService {
	return &RequestServiceImpl{
		RequestRepository: requestRepo,
		now:               time.Now,
		newID:             uuid.NewV7,
	}
}
