package attendance

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// AggregateDay computes the totals of one employee on one business day.
func AggregateDay(day time.Time, punches []attendance.Punch, baseHours float64, policy attendance.Policy) attendance.DailyAggregate {
	pairing := PairIntervals(punches, policy.DoubleIn)

	breakMinutes := 0
	for _, b := range pairing.Break {
		breakMinutes += b.Minutes()
	}

	workMinutes := 0
	for _, w := range pairing.Work {
		minutes := w.Minutes()
		if policy.SubtractBreaksFromWork {
			for _, b := range pairing.Break {
				if w.Contains(b) {
					minutes -= b.Minutes()
				}
			}
			minutes = max(minutes, 0)
		}
		workMinutes += minutes
	}

	return attendance.DailyAggregate{
		BusinessDay:     day,
		WorkMinutes:     workMinutes,
		BreakMinutes:    breakMinutes,
		OvertimeMinutes: OvertimeMinutes(workMinutes, baseHours),
		Notes:           CollectNotes(nil, punchNotes(punches)...),
	}
}

// OvertimeMinutes is the work beyond the daily base, never negative.
func OvertimeMinutes(workMinutes int, baseHours float64) int {
	base := int(math.Round(baseHours * 60))
	return max(workMinutes-base, 0)
}

// CollectNotes appends the non-blank candidates to notes, skipping exact
// duplicates and keeping first-seen order.
func CollectNotes(notes []string, candidates ...string) []string {
	if notes == nil {
		notes = make([]string, 0)
	}
	for _, note := range candidates {
		if strings.TrimSpace(note) == "" || slices.Contains(notes, note) {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

func punchNotes(punches []attendance.Punch) []string {
	sorted := SortPunches(punches)
	notes := make([]string, 0, len(sorted))
	for _, p := range sorted {
		notes = append(notes, p.Note)
	}
	return notes
}
