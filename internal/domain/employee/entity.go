package employee

import "sort"

// DefaultBaseHoursPerDay applies when an employee has no profile or the
// profile leaves base hours unset.
const DefaultBaseHoursPerDay = 8.0

// Profile is the slice of the HR employee record the attendance engine reads.
type Profile struct {
	EmployeeID      string
	EmployeeCode    string
	DepartmentID    *string
	PositionID      *string
	BaseHoursPerDay *float64
	IsManager       bool
}

// BaseHours returns the configured daily base hours or fallback.
func (p *Profile) BaseHours(fallback float64) float64 {
	if p == nil || p.BaseHoursPerDay == nil || *p.BaseHoursPerDay < 0 {
		return fallback
	}
	return *p.BaseHoursPerDay
}

// Selector names the employees a query covers: either everyone or an
// explicit set. An explicit empty set matches nobody.
type Selector struct {
	All         bool
	EmployeeIDs []string
}

func AllEmployees() Selector {
	return Selector{All: true}
}

// Only builds an explicit selector; duplicates are dropped and ids sorted.
func Only(ids ...string) Selector {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return Selector{EmployeeIDs: out}
}

func (s Selector) Includes(employeeID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// IsEmpty reports a selector that can never match.
func (s Selector) IsEmpty() bool {
	return !s.All && len(s.EmployeeIDs) == 0
}
