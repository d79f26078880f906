package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Insert implements attendance.PunchRepository.
func (r *punchRepositoryImpl) Insert(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (employee_id, punch_type, occurred_at, business_day, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		punch.EmployeeID,
		string(punch.Kind),
		punch.OccurredAt,
		punch.BusinessDay,
		punch.Note,
	).Scan(&punch.ID, &punch.CreatedAt)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("insert punch: %w", err)
	}

	return punch, nil
}

// ListByBusinessDays implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListByBusinessDays(ctx context.Context, selector employee.Selector, from, to time.Time) ([]attendance.Punch, error) {
	if selector.IsEmpty() {
		return []attendance.Punch{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, punch_type, occurred_at, business_day, note, created_at
		FROM punches
		WHERE business_day BETWEEN $1 AND $2
	`
	args := []interface{}{from, to}
	if !selector.All {
		query += ` AND employee_id = ANY($3)`
		args = append(args, selector.EmployeeIDs)
	}
	query += ` ORDER BY business_day, occurred_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query punches: %w", err)
	}
	defer rows.Close()

	punches := make([]attendance.Punch, 0)
	for rows.Next() {
		var (
			p    attendance.Punch
			kind string
		)
		if err := rows.Scan(&p.ID, &p.EmployeeID, &kind, &p.OccurredAt, &p.BusinessDay, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan punch: %w", err)
		}
		p.Kind = attendance.PunchKind(kind)
		p.OccurredAt = p.OccurredAt.UTC()
		p.BusinessDay = time.Date(p.BusinessDay.Year(), p.BusinessDay.Month(), p.BusinessDay.Day(), 0, 0, 0, 0, time.UTC)
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate punches: %w", err)
	}

	return punches, nil
}
