package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
)

type requestRepository struct {
	mu       sync.Mutex
	requests map[string]request.Request
	order    []string // insertion order, breaks CreatedAt ties
}

func NewRequestRepository() request.RequestRepository {
	return &requestRepository{requests: make(map[string]request.Request)}
}

// Create implements request.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[req.ID] = req
	r.order = append(r.order, req.ID)
	return req, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return req, nil
}

// List implements request.RequestRepository.
func (r *requestRepository) List(ctx context.Context, filter request.ListFilter) ([]request.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]request.Request, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.requests[r.order[i]]
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.Kind != nil && req.Kind != *filter.Kind {
			continue
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Transition implements request.RequestRepository. The check and the write
// happen under one lock, so exactly one of several racing callers succeeds.
func (r *requestRepository) Transition(ctx context.Context, t request.Transition) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[t.ID]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	if !req.IsPending() {
		return request.Request{}, request.ErrInvalidStateTransition
	}

	at := t.At.UTC()
	req.Status = t.To
	req.UpdatedAt = at
	if t.ApproverID != nil {
		approver := *t.ApproverID
		req.ApproverID = &approver
		req.DecidedAt = &at
	}
	r.requests[t.ID] = req
	return req, nil
}
