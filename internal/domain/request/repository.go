package request

import (
	"context"
	"time"
)

// ListFilter narrows List; nil fields are not applied.
type ListFilter struct {
	EmployeeID *string
	Status     *Status
	Kind       *Kind
}

// Transition moves a PENDING request to To.
type Transition struct {
	ID         string
	To         Status
	ApproverID *string
	At         time.Time
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID returns ErrRequestNotFound when no request has the id
	GetByID(ctx context.Context, id string) (Request, error)

	// List returns matching requests, newest first
	List(ctx context.Context, filter ListFilter) ([]Request, error)

	// Transition applies t only if the request is still PENDING, as one atomic step.
	// It returns ErrRequestNotFound or ErrInvalidStateTransition otherwise.
	Transition(ctx context.Context, t Transition) (Request, error)
}
