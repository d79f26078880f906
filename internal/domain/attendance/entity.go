package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
)

type PunchKind string

const (
	PunchIn         PunchKind = "IN"
	PunchOut        PunchKind = "OUT"
	PunchBreakStart PunchKind = "BREAK_START"
	PunchBreakEnd   PunchKind = "BREAK_END"
)

var PunchKinds = []PunchKind{PunchIn, PunchOut, PunchBreakStart, PunchBreakEnd}

// ParsePunchKind accepts the enumerated kinds case-insensitively.
func ParsePunchKind(s string) (PunchKind, error) {
	kind := PunchKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, k := range PunchKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", ErrInvalidPunchKind
}

// Punch is a single immutable attendance event.
type Punch struct {
	ID          int64 // store sequence, breaks ties between equal OccurredAt
	EmployeeID  string
	Kind        PunchKind
	OccurredAt  time.Time // UTC
	BusinessDay time.Time // UTC+9 calendar date, fixed at creation
	Note        string
	CreatedAt   time.Time
}

// NewPunch builds a punch and fixes its business day. BusinessDay must never
// be recomputed after this point; it is the aggregation partition key.
func NewPunch(employeeID string, kind PunchKind, occurredAt time.Time, note string) Punch {
	occurredAt = bizday.ToUTC(occurredAt)
	return Punch{
		EmployeeID:  employeeID,
		Kind:        kind,
		OccurredAt:  occurredAt,
		BusinessDay: bizday.Of(occurredAt),
		Note:        note,
	}
}

// DoubleInPolicy decides what a second IN does while a work span is open.
type DoubleInPolicy string

const (
	DoubleInFirstWins      DoubleInPolicy = "first_wins"
	DoubleInCloseAndReopen DoubleInPolicy = "close_and_reopen"
)

func ParseDoubleInPolicy(s string) (DoubleInPolicy, bool) {
	switch DoubleInPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DoubleInFirstWins, "":
		return DoubleInFirstWins, true
	case DoubleInCloseAndReopen:
		return DoubleInCloseAndReopen, true
	}
	return "", false
}

// Policy holds the aggregation choices that comparable systems disagree on.
type Policy struct {
	SubtractBreaksFromWork bool
	DoubleIn               DoubleInPolicy
	DefaultBaseHours       float64
}

func DefaultPolicy() Policy {
	return Policy{
		SubtractBreaksFromWork: false,
		DoubleIn:               DoubleInFirstWins,
		DefaultBaseHours:       8.0,
	}
}

// DailyAggregate is derived on demand and never stored.
type DailyAggregate struct {
	BusinessDay     time.Time
	WorkMinutes     int
	BreakMinutes    int
	OvertimeMinutes int
	Notes           []string
}

// SummaryRow is one calendar date of a range summary.
type SummaryRow struct {
	DailyAggregate
	WorkHours float64
}
