package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *PostgresRepository) Exists(ctx context.Context, userID, restaurantID, listName string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM favorites
			WHERE user_id = $1 AND restaurant_id = $2 AND list_name = $3
		)`,
		userID, restaurantID, listName,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Add(ctx context.Context, f *Favorite) error {
	f.ID = uuid.New().String()
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (id, user_id, restaurant_id, list_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		f.ID, f.UserID, f.RestaurantID, f.ListName,
	).Scan(&f.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrConflict
	}
	return err
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, restaurantID, listName string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites
		 WHERE user_id = $1 AND restaurant_id = $2 AND list_name = $3`,
		userID, restaurantID, listName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Move(ctx context.Context, userID, restaurantID, fromList, toList string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE favorites SET list_name = $4
		 WHERE user_id = $1 AND restaurant_id = $2 AND list_name = $3`,
		userID, restaurantID, fromList, toList,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httperr.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListNames(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT list_name FROM favorites
		 WHERE user_id = $1
		 ORDER BY list_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PostgresRepository) ListEntries(ctx context.Context, userID, listName string) ([]Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT f.id, f.user_id, f.restaurant_id, f.list_name, f.created_at,
		        rest.name, rest.cuisine_type, rest.price_range, rest.halal_status
		 FROM favorites f
		 JOIN restaurants rest ON rest.id = f.restaurant_id
		 WHERE f.user_id = $1 AND f.list_name = $2
		 ORDER BY f.created_at DESC`,
		userID, listName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.RestaurantID, &e.ListName, &e.CreatedAt,
			&e.RestaurantName, &e.CuisineType, &e.PriceRange, &e.HalalStatus,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresRepository) RenameList(ctx context.Context, userID, from, to string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE favorites SET list_name = $3
		 WHERE user_id = $1 AND list_name = $2`,
		userID, from, to,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httperr.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteList(ctx context.Context, userID, name string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND list_name = $2`,
		userID, name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}
