package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// AttendanceService defines the punch and summary operations
type AttendanceService interface {
	// SubmitPunch records a punch for the caller; the server clock is used when no time is sent
	SubmitPunch(ctx context.Context, caller *user.Caller, req SubmitPunchRequest) (PunchResponse, error)

	// ListPunches returns raw punches of one employee over a business-day range
	ListPunches(ctx context.Context, caller *user.Caller, req ListPunchesRequest) ([]PunchResponse, error)

	// GetSummary returns one row per calendar date in the range, merged across the caller's scope
	GetSummary(ctx context.Context, caller *user.Caller, req SummaryRequest) (SummaryResponse, error)

	// GetWeeklySummary summarizes the Monday..Sunday week containing req.Date
	GetWeeklySummary(ctx context.Context, caller *user.Caller, req PeriodSummaryRequest) (SummaryResponse, error)

	// GetMonthlySummary summarizes the calendar month containing req.Date
	GetMonthlySummary(ctx context.Context, caller *user.Caller, req PeriodSummaryRequest) (SummaryResponse, error)
}
