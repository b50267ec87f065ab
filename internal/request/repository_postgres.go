package request

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"halalbites/internal/httperr"
)

// --------------------------------------------------
// PostgreSQL Repository
// --------------------------------------------------

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *Request) error {
	data, err := json.Marshal(req.Submission)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO restaurant_requests (user_id, submission_data)
		 VALUES ($1, $2)
		 RETURNING id, status, created_at, updated_at`,
		req.UserID, data,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	req, err := scanRequest(r.db.QueryRow(ctx,
		`SELECT id, user_id, submission_data, status, admin_notes, restaurant_id, created_at, updated_at
		 FROM restaurant_requests WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.ErrNotFound
	}
	return req, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, submission_data, status, admin_notes, restaurant_id, created_at, updated_at
		 FROM restaurant_requests
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, submission_data, status, admin_notes, restaurant_id, created_at, updated_at
		 FROM restaurant_requests
		 WHERE status = $1
		 ORDER BY created_at ASC`,
		status,
	)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *PostgresRepository) Resolve(ctx context.Context, id, status, adminNotes string, restaurantID *string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE restaurant_requests
		 SET status = $2, admin_notes = NULLIF($3, ''), restaurant_id = $4, updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		id, status, adminNotes, restaurantID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*Request, error) {
	var req Request
	var data []byte
	if err := row.Scan(
		&req.ID, &req.UserID, &data, &req.Status,
		&req.AdminNotes, &req.RestaurantID, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &req.Submission); err != nil {
		return nil, err
	}
	return &req, nil
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
