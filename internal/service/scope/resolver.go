package scope

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// Resolver decides which employees a caller may see in aggregate queries.
type Resolver struct {
	profiles employee.ProfileRepository
}

func NewResolver(profiles employee.ProfileRepository) *Resolver {
	return &Resolver{profiles: profiles}
}

// IsElevated reports whether the caller may look beyond their own records:
// a role holding attendance.view_all, or a profile flagged as manager.
func (r *Resolver) IsElevated(ctx context.Context, caller *user.Caller) (bool, error) {
	if !caller.IsAuthenticated() {
		return false, user.ErrPermissionDenied
	}
	if user.HasPermission(caller.Role, user.PermissionAttendanceViewAll) {
		return true, nil
	}

	profile, err := r.profiles.GetByEmployeeID(ctx, caller.EmployeeID)
	if err != nil {
		return false, fmt.Errorf("failed to get caller profile: %w", err)
	}
	return profile != nil && profile.IsManager, nil
}

// Resolve turns a caller and optional filters into an employee selector.
// Non-elevated callers always get themselves and their filters are ignored.
// Elevated callers with no filters get everyone; with filters, the matching
// set, which may be empty.
func (r *Resolver) Resolve(ctx context.Context, caller *user.Caller, filter employee.Filter) (employee.Selector, error) {
	elevated, err := r.IsElevated(ctx, caller)
	if err != nil {
		return employee.Selector{}, err
	}
	if !elevated {
		return employee.Only(caller.EmployeeID), nil
	}

	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return employee.Selector{}, err
	}
	if filter.IsEmpty() {
		return employee.AllEmployees(), nil
	}
	// employees without a profile row are still addressable by id
	if onlyEmployeeID(filter) {
		return employee.Only(*filter.EmployeeID), nil
	}

	ids, err := r.profiles.FindEmployeeIDs(ctx, filter)
	if err != nil {
		return employee.Selector{}, fmt.Errorf("failed to find employees by filter: %w", err)
	}
	return employee.Only(ids...), nil
}

func onlyEmployeeID(f employee.Filter) bool {
	return f.EmployeeID != nil && f.DepartmentID == nil && f.PositionID == nil && f.EmployeeCode == nil
}
