package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// Interval is a closed span of time with End after Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes truncates toward zero.
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// Contains reports whether other lies entirely inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Pairing holds the credited work and break spans of one employee-day.
type Pairing struct {
	Work  []Interval
	Break []Interval
}

// SortPunches orders punches by occurred_at, then store id.
func SortPunches(punches []attendance.Punch) []attendance.Punch {
	sorted := make([]attendance.Punch, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OccurredAt.Equal(sorted[j].OccurredAt) {
			return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// PairIntervals turns one employee-day of punches into work and break spans.
// At most one work span and one break are open at a time. Spans that never
// close, zero or negative spans, and unmatched closing punches are dropped.
func PairIntervals(punches []attendance.Punch, doubleIn attendance.DoubleInPolicy) Pairing {
	var (
		pairing    Pairing
		workOpen   bool
		workStart  time.Time
		breakOpen  bool
		breakStart time.Time
	)

	closeWork := func(end time.Time) {
		if end.After(workStart) {
			pairing.Work = append(pairing.Work, Interval{Start: workStart, End: end})
		}
		workOpen, breakOpen = false, false
	}

	for _, p := range SortPunches(punches) {
		at := p.OccurredAt
		switch p.Kind {
		case attendance.PunchIn:
			if !workOpen {
				workOpen, workStart = true, at
				continue
			}
			if doubleIn == attendance.DoubleInCloseAndReopen {
				closeWork(at)
				workOpen, workStart = true, at
			}

		case attendance.PunchOut:
			if workOpen {
				closeWork(at)
			}

		case attendance.PunchBreakStart:
			if workOpen && !breakOpen {
				breakOpen, breakStart = true, at
			}

		case attendance.PunchBreakEnd:
			if !breakOpen {
				continue
			}
			if at.After(breakStart) {
				pairing.Break = append(pairing.Break, Interval{Start: breakStart, End: at})
			}
			breakOpen = false
		}
	}

	return pairing
}
