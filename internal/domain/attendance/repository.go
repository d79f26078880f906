package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

// PunchRepository is the append-only punch log.
type PunchRepository interface {
	// Insert stores a new punch and returns it with ID and CreatedAt set
	Insert(ctx context.Context, punch Punch) (Punch, error)

	// ListByBusinessDays returns punches of the selected employees whose business
	// day is within [from, to], ordered by business_day, occurred_at, id
	ListByBusinessDays(ctx context.Context, selector employee.Selector, from, to time.Time) ([]Punch, error)
}
