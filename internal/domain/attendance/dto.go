package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// MaxRangeDays caps a single summary query.
const MaxRangeDays = 366

// ========================================
// PUNCH DTOs
// ========================================

type SubmitPunchRequest struct {
	Type      string  `json:"type"`
	Note      string  `json:"note"`
	PunchedAt *string `json:"punched_at,omitempty"` // RFC3339, or naive local (UTC+9) clock

	kind       PunchKind
	occurredAt *time.Time
}

func (r *SubmitPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	kind, err := ParsePunchKind(r.Type)
	if err != nil {
		errs.Add("type", err.Error())
	}
	r.kind = kind

	if len(r.Note) > 255 {
		errs.Add("note", "note must not exceed 255 characters")
	}

	if r.PunchedAt != nil && !validator.IsEmpty(*r.PunchedAt) {
		at, err := bizday.ParseInstant(*r.PunchedAt)
		if err != nil {
			errs.Add("punched_at", "punched_at must be an ISO8601 timestamp")
		} else {
			r.occurredAt = &at
		}
	}

	return errs.Err()
}

// Kind is only meaningful after a successful Validate.
func (r *SubmitPunchRequest) Kind() PunchKind {
	return r.kind
}

// OccurredAt is nil when the client did not send a timestamp.
func (r *SubmitPunchRequest) OccurredAt() *time.Time {
	return r.occurredAt
}

type PunchResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	PunchType  string `json:"punch_type"`
	PunchedAt  string `json:"punched_at"` // RFC3339 in UTC+9
	WorkDate   string `json:"work_date"`  // YYYY-MM-DD
	Note       string `json:"note"`
}

func NewPunchResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		PunchType:  string(p.Kind),
		PunchedAt:  p.OccurredAt.In(bizday.Location).Format(time.RFC3339),
		WorkDate:   bizday.FormatDate(p.BusinessDay),
		Note:       p.Note,
	}
}

type ListPunchesRequest struct {
	From       string  `json:"from"` // YYYY-MM-DD
	To         string  `json:"to"`   // YYYY-MM-DD
	EmployeeID *string `json:"employee_id,omitempty"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryRequest struct {
	From   string          `json:"from"` // YYYY-MM-DD, defaults to today
	To     string          `json:"to"`   // YYYY-MM-DD, defaults to from
	Filter employee.Filter `json:"filter"`
}

// PeriodSummaryRequest asks for the week or month containing Date.
type PeriodSummaryRequest struct {
	Date   string          `json:"date"` // YYYY-MM-DD, defaults to today
	Filter employee.Filter `json:"filter"`
}

type DailySummaryResponse struct {
	Date            string   `json:"date"`
	WorkMinutes     int      `json:"work_minutes"`
	WorkHours       float64  `json:"work_hours"`
	BreakMinutes    int      `json:"break_minutes"`
	OvertimeMinutes int      `json:"overtime_minutes"`
	Notes           []string `json:"notes"`
}

type SummaryTotals struct {
	WorkMinutes     int     `json:"work_minutes"`
	WorkHours       float64 `json:"work_hours"`
	BreakMinutes    int     `json:"break_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
}

type SummaryResponse struct {
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Value  []DailySummaryResponse `json:"value"`
	Count  int                    `json:"count"`
	Totals SummaryTotals          `json:"totals"`
}

// ParseRange turns optional YYYY-MM-DD bounds into a normalized date range.
// A missing from means today, a missing to means from; reversed bounds are swapped.
func ParseRange(fromStr, toStr string, today time.Time) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	from := today
	if !validator.IsEmpty(fromStr) {
		d, err := bizday.ParseDate(fromStr)
		if err != nil {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
		from = d
	}

	to := from
	if !validator.IsEmpty(toStr) {
		d, err := bizday.ParseDate(toStr)
		if err != nil {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
		to = d
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	from, to = bizday.NormalizeRange(from, to)
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, days, MaxRangeDays)
	}

	return from, to, nil
}
