package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// WorkHours converts minutes to hours rounded half-up to 2 decimals.
func WorkHours(minutes int) float64 {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2).InexactFloat64()
}

type dayBucket struct {
	employeeIDs []string // first-appearance order
	punches     map[string][]attendance.Punch
}

// Summarize builds exactly one row per calendar date in [from, to]. Each
// employee's day is aggregated with their own base hours, then summed per
// date. Punches outside the range are ignored.
func Summarize(from, to time.Time, punches []attendance.Punch, profiles map[string]employee.Profile, policy attendance.Policy) []attendance.SummaryRow {
	buckets := make(map[time.Time]*dayBucket)
	for _, p := range SortPunches(punches) {
		b, ok := buckets[p.BusinessDay]
		if !ok {
			b = &dayBucket{punches: make(map[string][]attendance.Punch)}
			buckets[p.BusinessDay] = b
		}
		if _, seen := b.punches[p.EmployeeID]; !seen {
			b.employeeIDs = append(b.employeeIDs, p.EmployeeID)
		}
		b.punches[p.EmployeeID] = append(b.punches[p.EmployeeID], p)
	}

	days := bizday.Days(from, to)
	rows := make([]attendance.SummaryRow, 0, len(days))
	for _, day := range days {
		row := attendance.SummaryRow{
			DailyAggregate: attendance.DailyAggregate{BusinessDay: day, Notes: make([]string, 0)},
		}

		if b, ok := buckets[day]; ok {
			for _, id := range b.employeeIDs {
				var profile *employee.Profile
				if p, found := profiles[id]; found {
					profile = &p
				}
				agg := AggregateDay(day, b.punches[id], profile.BaseHours(policy.DefaultBaseHours), policy)
				row.WorkMinutes += agg.WorkMinutes
				row.BreakMinutes += agg.BreakMinutes
				row.OvertimeMinutes += agg.OvertimeMinutes
				row.Notes = CollectNotes(row.Notes, agg.Notes...)
			}
		}

		row.WorkHours = WorkHours(row.WorkMinutes)
		rows = append(rows, row)
	}

	return rows
}
