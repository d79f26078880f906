package request

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = &user.Caller{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee}
	stranger = &user.Caller{UserID: "u2", EmployeeID: "e2", Role: user.RoleEmployee}
	manager  = &user.Caller{UserID: "u3", EmployeeID: "e3", Role: user.RoleManager}
	admin    = &user.Caller{UserID: "u9", EmployeeID: "e9", Role: user.RoleAdmin}
)

func newTestService(t *testing.T) *RequestServiceImpl {
	t.Helper()
	svc := NewRequestService(memory.NewRequestRepository()).(*RequestServiceImpl)
	clock := time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func createOvertime(t *testing.T, svc *RequestServiceImpl, caller *user.Caller) request.RequestResponse {
	t.Helper()
	resp, err := svc.CreateOvertime(context.Background(), caller, request.CreateOvertimeRequest{
		StartDatetime: "2025-10-17T18:00:00",
		EndDatetime:   "2025-10-17T20:00:00",
		Reason:        "release",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateOvertime(t *testing.T) {
	svc := newTestService(t)

	resp := createOvertime(t, svc, owner)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, "overtime", resp.Kind)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "e1", resp.EmployeeID)
	assert.Nil(t, resp.ApproverID)
	require.NotNil(t, resp.OvertimeMinutes)
	assert.Equal(t, 120, *resp.OvertimeMinutes)

	_, err = svc.CreateOvertime(context.Background(), owner, request.CreateOvertimeRequest{
		StartDatetime: "2025-10-17T20:00:00",
		EndDatetime:   "2025-10-17T18:00:00",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.CreateOvertime(context.Background(), nil, request.CreateOvertimeRequest{})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestCreateLeave(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.CreateLeave(context.Background(), owner, request.CreateLeaveRequest{
		DateFrom:  "2025-10-20",
		DateTo:    "2025-10-24",
		LeaveType: "sick",
	})
	require.NoError(t, err)
	assert.Equal(t, "leave", resp.Kind)
	require.NotNil(t, resp.LeaveDays)
	assert.Equal(t, 5, *resp.LeaveDays)
	require.NotNil(t, resp.LeaveType)
	assert.Equal(t, "SICK", *resp.LeaveType)
	assert.Equal(t, "2025-10-20", *resp.DateFrom)

	_, err = svc.CreateLeave(context.Background(), owner, request.CreateLeaveRequest{DateFrom: "2025-10-24", DateTo: "2025-10-20"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestTransition_Approve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := createOvertime(t, svc, owner)

	approved, err := svc.Transition(ctx, admin, created.ID, request.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, "e9", *approved.ApproverID)
	assert.NotNil(t, approved.DecidedAt)

	_, err = svc.Transition(ctx, admin, created.ID, request.ActionApprove)
	assert.ErrorIs(t, err, request.ErrInvalidStateTransition)

	_, err = svc.Transition(ctx, owner, created.ID, request.ActionCancel)
	assert.ErrorIs(t, err, request.ErrInvalidStateTransition)
}

func TestTransition_Reject(t *testing.T) {
	svc := newTestService(t)
	created := createOvertime(t, svc, owner)

	rejected, err := svc.Transition(context.Background(), admin, created.ID, request.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", rejected.Status)
	assert.NotNil(t, rejected.DecidedAt)
}

func TestTransition_Permissions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := createOvertime(t, svc, owner)

	tests := []struct {
		name   string
		caller *user.Caller
		action request.Action
	}{
		{"stranger cannot cancel", stranger, request.ActionCancel},
		{"owner cannot approve own request", owner, request.ActionApprove},
		{"manager cannot reject", manager, request.ActionReject},
		{"stranger cannot approve", stranger, request.ActionApprove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transition(ctx, tt.caller, created.ID, tt.action)
			assert.ErrorIs(t, err, request.ErrForbidden)
		})
	}

	// nothing above changed the request
	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
}

func TestTransition_Cancel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mine := createOvertime(t, svc, owner)
	canceled, err := svc.Transition(ctx, owner, mine.ID, request.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", canceled.Status)
	assert.Nil(t, canceled.ApproverID)

	other := createOvertime(t, svc, stranger)
	canceled, err = svc.Transition(ctx, admin, other.ID, request.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", canceled.Status)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Transition(ctx, admin, uuid.NewString(), request.ActionApprove)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	_, err = svc.Transition(ctx, admin, "not-a-uuid", request.ActionApprove)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	_, err = svc.Transition(ctx, nil, uuid.NewString(), request.ActionApprove)
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestTransition_ConcurrentApproveHasOneWinner(t *testing.T) {
	svc := newTestService(t)
	created := createOvertime(t, svc, owner)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		losses  int
		unknown []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(action request.Action) {
			defer wg.Done()
			_, err := svc.Transition(context.Background(), admin, created.ID, action)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, request.ErrInvalidStateTransition):
				losses++
			default:
				unknown = append(unknown, err)
			}
		}([]request.Action{request.ActionApprove, request.ActionReject}[i%2])
	}
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)
}

func TestList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := createOvertime(t, svc, owner)
	_, err := svc.CreateLeave(ctx, owner, request.CreateLeaveRequest{DateFrom: "2025-11-03", DateTo: "2025-11-03"})
	require.NoError(t, err)
	createOvertime(t, svc, stranger)
	_, err = svc.Transition(ctx, admin, first.ID, request.ActionApprove)
	require.NoError(t, err)

	own, err := svc.List(ctx, owner, request.ListRequestsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, own.Count)
	assert.Equal(t, "leave", own.Value[0].Kind, "newest first")

	all, err := svc.List(ctx, admin, request.ListRequestsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)

	adminOwn, err := svc.List(ctx, admin, request.ListRequestsQuery{Me: true})
	require.NoError(t, err)
	assert.Zero(t, adminOwn.Count)
	assert.NotNil(t, adminOwn.Value)

	pending, err := svc.List(ctx, admin, request.ListRequestsQuery{Status: "pending", Kind: "overtime"})
	require.NoError(t, err)
	require.Equal(t, 1, pending.Count)
	assert.Equal(t, "e2", pending.Value[0].EmployeeID)

	_, err = svc.List(ctx, admin, request.ListRequestsQuery{Kind: "bonus"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := createOvertime(t, svc, owner)

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, admin, created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, request.ErrForbidden)
}
