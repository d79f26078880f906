package employee

import "context"

// ProfileRepository reads employee profiles owned by the HR core.
type ProfileRepository interface {
	// GetByEmployeeID returns nil, nil when the employee has no profile
	GetByEmployeeID(ctx context.Context, employeeID string) (*Profile, error)

	// ListBySelector returns the profiles of the selected employees keyed by employee ID.
	// Employees without a profile are simply absent from the map.
	ListBySelector(ctx context.Context, selector Selector) (map[string]Profile, error)

	// FindEmployeeIDs returns the employees matching every set filter field
	FindEmployeeIDs(ctx context.Context, filter Filter) ([]string, error)
}

// ProfileWriter is implemented by stores that hold their own copy of profiles.
type ProfileWriter interface {
	Upsert(ctx context.Context, profile Profile) error
}
