// Package memory holds mutex-guarded in-process stores. They back
// STORE_TYPE=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

type punchRepository struct {
	mu      sync.RWMutex
	seq     int64
	punches []attendance.Punch
	now     func() time.Time
}

func NewPunchRepository() attendance.PunchRepository {
	return &punchRepository{now: time.Now}
}

// Insert implements attendance.PunchRepository.
func (r *punchRepository) Insert(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Punch{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	punch.ID = r.seq
	punch.CreatedAt = r.now().UTC()
	r.punches = append(r.punches, punch)
	return punch, nil
}

// ListByBusinessDays implements attendance.PunchRepository.
func (r *punchRepository) ListByBusinessDays(ctx context.Context, selector employee.Selector, from, to time.Time) ([]attendance.Punch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if selector.IsEmpty() {
		return []attendance.Punch{}, nil
	}

	r.mu.RLock()
	out := make([]attendance.Punch, 0)
	for _, p := range r.punches {
		if p.BusinessDay.Before(from) || p.BusinessDay.After(to) {
			continue
		}
		if !selector.Includes(p.EmployeeID) {
			continue
		}
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.BusinessDay.Equal(b.BusinessDay) {
			return a.BusinessDay.Before(b.BusinessDay)
		}
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}
