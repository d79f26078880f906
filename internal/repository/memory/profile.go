package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

// ProfileRepository also implements employee.ProfileWriter.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]employee.Profile
}

func NewProfileRepository(profiles ...employee.Profile) *ProfileRepository {
	r := &ProfileRepository{profiles: make(map[string]employee.Profile, len(profiles))}
	for _, p := range profiles {
		r.profiles[p.EmployeeID] = p
	}
	return r
}

// Upsert implements employee.ProfileWriter.
func (r *ProfileRepository) Upsert(ctx context.Context, p employee.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.EmployeeID] = p
	return nil
}

// GetByEmployeeID implements employee.ProfileRepository.
func (r *ProfileRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[employeeID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListBySelector implements employee.ProfileRepository.
func (r *ProfileRepository) ListBySelector(ctx context.Context, selector employee.Selector) (map[string]employee.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]employee.Profile)
	if selector.All {
		for id, p := range r.profiles {
			out[id] = p
		}
		return out, nil
	}
	for _, id := range selector.EmployeeIDs {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// FindEmployeeIDs implements employee.ProfileRepository.
func (r *ProfileRepository) FindEmployeeIDs(ctx context.Context, filter employee.Filter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for id, p := range r.profiles {
		if filter.Matches(p) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
