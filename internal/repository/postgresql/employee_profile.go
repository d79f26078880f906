package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeProfileRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeProfileRepository(db *database.DB) employee.ProfileRepository {
	return &employeeProfileRepositoryImpl{db: db}
}

const profileColumns = `employee_id, employee_code, department_id, position_id, base_hours_per_day::float8, is_manager`

func scanProfile(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	err := row.Scan(&p.EmployeeID, &p.EmployeeCode, &p.DepartmentID, &p.PositionID, &p.BaseHoursPerDay, &p.IsManager)
	return p, err
}

// GetByEmployeeID implements employee.ProfileRepository.
func (r *employeeProfileRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM employee_profiles WHERE employee_id = $1`
	p, err := scanProfile(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// ListBySelector implements employee.ProfileRepository.
func (r *employeeProfileRepositoryImpl) ListBySelector(ctx context.Context, selector employee.Selector) (map[string]employee.Profile, error) {
	profiles := make(map[string]employee.Profile)
	if selector.IsEmpty() {
		return profiles, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM employee_profiles`
	var args []interface{}
	if !selector.All {
		query += ` WHERE employee_id = ANY($1)`
		args = append(args, selector.EmployeeIDs)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles[p.EmployeeID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// FindEmployeeIDs implements employee.ProfileRepository.
func (r *employeeProfileRepositoryImpl) FindEmployeeIDs(ctx context.Context, filter employee.Filter) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	addCondition := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addCondition("employee_id", filter.EmployeeID)
	addCondition("employee_code", filter.EmployeeCode)
	addCondition("department_id", filter.DepartmentID)
	addCondition("position_id", filter.PositionID)

	query := `SELECT employee_id FROM employee_profiles`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employee ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee ids: %w", err)
	}

	return ids, nil
}

// Upsert implements employee.ProfileWriter.
func (r *employeeProfileRepositoryImpl) Upsert(ctx context.Context, p employee.Profile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_profiles (employee_id, employee_code, department_id, position_id, base_hours_per_day, is_manager)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id) DO UPDATE SET
			employee_code = EXCLUDED.employee_code,
			department_id = EXCLUDED.department_id,
			position_id = EXCLUDED.position_id,
			base_hours_per_day = EXCLUDED.base_hours_per_day,
			is_manager = EXCLUDED.is_manager,
			updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, p.EmployeeID, p.EmployeeCode, p.DepartmentID, p.PositionID, p.BaseHoursPerDay, p.IsManager); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
