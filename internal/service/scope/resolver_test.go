package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// failingProfiles fails every lookup.
type failingProfiles struct{}

func (failingProfiles) GetByEmployeeID(context.Context, string) (*employee.Profile, error) {
	return nil, errors.New("connection refused")
}

func (failingProfiles) ListBySelector(context.Context, employee.Selector) (map[string]employee.Profile, error) {
	return nil, errors.New("connection refused")
}

func (failingProfiles) FindEmployeeIDs(context.Context, employee.Filter) ([]string, error) {
	return nil, errors.New("connection refused")
}

func newResolver() *Resolver {
	return NewResolver(memory.NewProfileRepository(
		employee.Profile{EmployeeID: "e1", EmployeeCode: "E0001", DepartmentID: strPtr("D1"), PositionID: strPtr("P1")},
		employee.Profile{EmployeeID: "e2", EmployeeCode: "E0002", DepartmentID: strPtr("D1"), PositionID: strPtr("P2")},
		employee.Profile{EmployeeID: "m1", EmployeeCode: "M0001", DepartmentID: strPtr("D1"), IsManager: true},
	))
}

func TestResolve(t *testing.T) {
	r := newResolver()
	ctx := context.Background()

	tests := []struct {
		name   string
		caller *user.Caller
		filter employee.Filter
		want   employee.Selector
	}{
		{
			name:   "employee gets self",
			caller: &user.Caller{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee},
			want:   employee.Only("e1"),
		},
		{
			name:   "employee filters ignored",
			caller: &user.Caller{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee},
			filter: employee.Filter{DepartmentID: strPtr("D1")},
			want:   employee.Only("e1"),
		},
		{
			name:   "admin without filters sees all",
			caller: &user.Caller{UserID: "a", EmployeeID: "a1", Role: user.RoleAdmin},
			filter: employee.Filter{PositionID: strPtr("  ")},
			want:   employee.AllEmployees(),
		},
		{
			name:   "manager role filters by department and position",
			caller: &user.Caller{UserID: "m", EmployeeID: "x", Role: user.RoleManager},
			filter: employee.Filter{DepartmentID: strPtr("D1"), PositionID: strPtr("P2")},
			want:   employee.Only("e2"),
		},
		{
			name:   "manager flag on profile elevates",
			caller: &user.Caller{UserID: "m", EmployeeID: "m1", Role: user.RoleEmployee},
			filter: employee.Filter{DepartmentID: strPtr("D1")},
			want:   employee.Only("e1", "e2", "m1"),
		},
		{
			name:   "no match yields an empty set",
			caller: &user.Caller{UserID: "a", EmployeeID: "a1", Role: user.RoleAdmin},
			filter: employee.Filter{EmployeeCode: strPtr("NOPE")},
			want:   employee.Only(),
		},
		{
			name:   "employee id without profile",
			caller: &user.Caller{UserID: "a", EmployeeID: "a1", Role: user.RoleAdmin},
			filter: employee.Filter{EmployeeID: strPtr(" ghost ")},
			want:   employee.Only("ghost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(ctx, tt.caller, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Unauthenticated(t *testing.T) {
	r := newResolver()
	for _, caller := range []*user.Caller{nil, {}, {UserID: "u1"}} {
		_, err := r.Resolve(context.Background(), caller, employee.Filter{})
		assert.ErrorIs(t, err, user.ErrPermissionDenied)
	}
}

func TestResolve_InvalidFilter(t *testing.T) {
	r := newResolver()
	admin := &user.Caller{UserID: "a", EmployeeID: "a1", Role: user.RoleAdmin}
	_, err := r.Resolve(context.Background(), admin, employee.Filter{EmployeeCode: strPtr("THIS-CODE-IS-WAY-TOO-LONG-FOR-THE-FIELD")})
	assert.Error(t, err)
}

func TestIsElevated_StoreFailure(t *testing.T) {
	r := NewResolver(failingProfiles{})
	_, err := r.IsElevated(context.Background(), &user.Caller{UserID: "u", EmployeeID: "e", Role: user.RoleEmployee})
	assert.Error(t, err)

	// role-based elevation never touches the store
	ok, err := r.IsElevated(context.Background(), &user.Caller{UserID: "u", EmployeeID: "e", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, ok)
}
