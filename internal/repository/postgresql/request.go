package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/request"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `id::text, kind, employee_id, approver_id, start_at, end_at, date_from, date_to,
	leave_type, reason, status, decided_at, created_at, updated_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var (
		r                    request.Request
		kind, status         string
		leaveType            *string
		dateFrom, dateTo     *time.Time
		startAt, endAt       *time.Time
		decidedAt            *time.Time
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&r.ID,
		&kind,
		&r.EmployeeID,
		&r.ApproverID,
		&startAt,
		&endAt,
		&dateFrom,
		&dateTo,
		&leaveType,
		&r.Reason,
		&status,
		&decidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return request.Request{}, err
	}

	r.Kind = request.Kind(kind)
	r.Status = request.Status(status)
	r.StartAt = utcPtr(startAt)
	r.EndAt = utcPtr(endAt)
	r.DateFrom = datePtr(dateFrom)
	r.DateTo = datePtr(dateTo)
	r.DecidedAt = utcPtr(decidedAt)
	r.CreatedAt = createdAt.UTC()
	r.UpdatedAt = updatedAt.UTC()
	if leaveType != nil {
		lt := request.LeaveType(*leaveType)
		r.LeaveType = &lt
	}
	return r, nil
}

// Create implements request.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	var leaveType *string
	if req.LeaveType != nil {
		lt := string(*req.LeaveType)
		leaveType = &lt
	}

	query := `
		INSERT INTO requests (id, kind, employee_id, approver_id, start_at, end_at, date_from, date_to,
			leave_type, reason, status, decided_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + requestColumns

	created, err := scanRequest(q.QueryRow(ctx, query,
		req.ID,
		string(req.Kind),
		req.EmployeeID,
		req.ApproverID,
		req.StartAt,
		req.EndAt,
		req.DateFrom,
		req.DateTo,
		leaveType,
		req.Reason,
		string(req.Status),
		req.DecidedAt,
		req.CreatedAt,
		req.UpdatedAt,
	))
	if err != nil {
		return request.Request{}, fmt.Errorf("insert request: %w", err)
	}
	return created, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// List implements request.RequestRepository.
func (r *requestRepositoryImpl) List(ctx context.Context, filter request.ListFilter) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM requests`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}

// Transition implements request.RequestRepository. The status guard lives in
// the UPDATE itself, so concurrent transitions cannot both succeed.
func (r *requestRepositoryImpl) Transition(ctx context.Context, t request.Transition) (request.Request, error) {
	var updated request.Request

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := WithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			UPDATE requests
			SET status = $2,
				approver_id = COALESCE($3, approver_id),
				decided_at = CASE WHEN $3::text IS NULL THEN decided_at ELSE $4 END,
				updated_at = $4
			WHERE id = $1 AND status = 'PENDING'
			RETURNING ` + requestColumns

		var err error
		updated, err = scanRequest(q.QueryRow(txCtx, query, t.ID, string(t.To), t.ApproverID, t.At))
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update request status: %w", err)
		}

		var exists bool
		if err := q.QueryRow(txCtx, `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, t.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check request exists: %w", err)
		}
		if !exists {
			return request.ErrRequestNotFound
		}
		return request.ErrInvalidStateTransition
	})
	if err != nil {
		return request.Request{}, err
	}

	return updated, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
