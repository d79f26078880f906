package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/scope"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendance.PunchRepository
	employee.ProfileRepository
	scope  *scope.Resolver
	policy attendance.Policy
	now    func() time.Time
}

// SubmitPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitPunch(ctx context.Context, caller *user.Caller, req attendance.SubmitPunchRequest) (attendance.PunchResponse, error) {
	if !caller.IsAuthenticated() {
		return attendance.PunchResponse{}, user.ErrPermissionDenied
	}
	if !user.HasPermission(caller.Role, user.PermissionAttendancePunch) {
		return attendance.PunchResponse{}, user.ErrInsufficientPermission
	}
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	occurredAt := a.now()
	if at := req.OccurredAt(); at != nil {
		occurredAt = *at
	}

	punch := attendance.NewPunch(caller.EmployeeID, req.Kind(), occurredAt, strings.TrimSpace(req.Note))
	saved, err := a.PunchRepository.Insert(ctx, punch)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to insert punch: %w", err)
	}

	return attendance.NewPunchResponse(saved), nil
}

// ListPunches implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListPunches(ctx context.Context, caller *user.Caller, req attendance.ListPunchesRequest) ([]attendance.PunchResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, user.ErrPermissionDenied
	}

	from, to, err := attendance.ParseRange(req.From, req.To, bizday.Today(a.now()))
	if err != nil {
		return nil, err
	}

	// always a single employee; a blank employee_id means the caller
	selector := employee.Only(caller.EmployeeID)
	if target := validator.TrimOrNil(req.EmployeeID); target != nil && *target != caller.EmployeeID {
		selector, err = a.scope.Resolve(ctx, caller, employee.Filter{EmployeeID: target})
		if err != nil {
			return nil, err
		}
		if selector.All {
			selector = employee.Only(*target)
		}
	}

	punches, err := a.PunchRepository.ListByBusinessDays(ctx, selector, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]attendance.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, attendance.NewPunchResponse(p))
	}
	return responses, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, caller *user.Caller, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if !caller.IsAuthenticated() {
		return attendance.SummaryResponse{}, user.ErrPermissionDenied
	}

	from, to, err := attendance.ParseRange(req.From, req.To, bizday.Today(a.now()))
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return a.summarize(ctx, caller, from, to, req.Filter)
}

// GetWeeklySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWeeklySummary(ctx context.Context, caller *user.Caller, req attendance.PeriodSummaryRequest) (attendance.SummaryResponse, error) {
	if !caller.IsAuthenticated() {
		return attendance.SummaryResponse{}, user.ErrPermissionDenied
	}

	day, err := a.periodDate(req.Date)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	from, to := bizday.WeekOf(day)
	return a.summarize(ctx, caller, from, to, req.Filter)
}

// GetMonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, caller *user.Caller, req attendance.PeriodSummaryRequest) (attendance.SummaryResponse, error) {
	if !caller.IsAuthenticated() {
		return attendance.SummaryResponse{}, user.ErrPermissionDenied
	}

	day, err := a.periodDate(req.Date)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	from, to := bizday.MonthOf(day)
	return a.summarize(ctx, caller, from, to, req.Filter)
}

func (a *AttendanceServiceImpl) periodDate(s string) (time.Time, error) {
	if validator.IsEmpty(s) {
		return bizday.Today(a.now()), nil
	}
	day, err := bizday.ParseDate(s)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("date", "date must be in YYYY-MM-DD format")
		return time.Time{}, errs
	}
	return day, nil
}

func (a *AttendanceServiceImpl) summarize(ctx context.Context, caller *user.Caller, from, to time.Time, filter employee.Filter) (attendance.SummaryResponse, error) {
	selector, err := a.scope.Resolve(ctx, caller, filter)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	var (
		punches  []attendance.Punch
		profiles map[string]employee.Profile
	)

	if !selector.IsEmpty() {
		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			list, err := a.PunchRepository.ListByBusinessDays(gCtx, selector, from, to)
			if err != nil {
				return fmt.Errorf("failed to list punches: %w", err)
			}
			punches = list
			return nil
		})

		g.Go(func() error {
			m, err := a.ProfileRepository.ListBySelector(gCtx, selector)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			profiles = m
			return nil
		})

		if err := g.Wait(); err != nil {
			return attendance.SummaryResponse{}, err
		}
	}

	rows := Summarize(from, to, punches, profiles, a.policy)
	return newSummaryResponse(from, to, rows), nil
}

func newSummaryResponse(from, to time.Time, rows []attendance.SummaryRow) attendance.SummaryResponse {
	resp := attendance.SummaryResponse{
		From:  bizday.FormatDate(from),
		To:    bizday.FormatDate(to),
		Value: make([]attendance.DailySummaryResponse, 0, len(rows)),
		Count: len(rows),
	}

	for _, row := range rows {
		resp.Value = append(resp.Value, attendance.DailySummaryResponse{
			Date:            bizday.FormatDate(row.BusinessDay),
			WorkMinutes:     row.WorkMinutes,
			WorkHours:       row.WorkHours,
			BreakMinutes:    row.BreakMinutes,
			OvertimeMinutes: row.OvertimeMinutes,
			Notes:           row.Notes,
		})
		resp.Totals.WorkMinutes += row.WorkMinutes
		resp.Totals.BreakMinutes += row.BreakMinutes
		resp.Totals.OvertimeMinutes += row.OvertimeMinutes
	}
	resp.Totals.WorkHours = WorkHours(resp.Totals.WorkMinutes)

	return resp
}

func NewAttendanceService(
	punchRepo attendance.PunchRepository,
	profileRepo employee.ProfileRepository,
	resolver *scope.Resolver,
	policy attendance.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		PunchRepository:   punchRepo,
		ProfileRepository: profileRepo,
		scope:             resolver,
		policy:            policy,
		now:               time.Now,
	}
}
