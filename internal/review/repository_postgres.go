package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"halalbites/internal/httperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create review (one per user per restaurant)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, rev *Review) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (restaurant_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rev.RestaurantID, rev.UserID, rev.Rating, rev.Comment).
		Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrConflict
	}
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, rev *Review) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, rev.ID, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, id)

	rev := &Review{}
	err := row.Scan(
		&rev.ID, &rev.RestaurantID, &rev.UserID,
		&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// --------------------------------------------------
// List reviews with author profile + images
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			rv.id, rv.restaurant_id, rv.user_id, rv.rating, rv.comment,
			rv.created_at, rv.updated_at,
			COALESCE(p.username, ''), COALESCE(p.avatar_url, ''),
			COALESCE(
				ARRAY(SELECT ri.url FROM review_images ri WHERE ri.review_id = rv.id),
				'{}'
			)
		FROM reviews rv
		LEFT JOIN profiles p ON p.user_id = rv.user_id
		WHERE rv.restaurant_id = $1
		ORDER BY rv.created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rev := &Review{}
		if err := rows.Scan(
			&rev.ID, &rev.RestaurantID, &rev.UserID, &rev.Rating, &rev.Comment,
			&rev.CreatedAt, &rev.UpdatedAt,
			&rev.Username, &rev.AvatarURL, &rev.Images,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) AddImage(ctx context.Context, reviewID, url string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO review_images (review_id, url) VALUES ($1, $2)
	`, reviewID, url)
	return err
}
