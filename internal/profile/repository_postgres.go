package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRow(ctx,
		`SELECT user_id, username, avatar_url, created_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Username, &p.AvatarURL, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetPublicByUsername(ctx context.Context, username string) (*Public, error) {
	var p Public
	err := r.db.QueryRow(ctx,
		`SELECT p.username, p.avatar_url,
		        (SELECT COUNT(*) FROM reviews rv WHERE rv.user_id = p.user_id)
		 FROM profiles p WHERE p.username = $1`,
		username,
	).Scan(&p.Username, &p.AvatarURL, &p.ReviewCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET username = $2 WHERE user_id = $1`,
		userID, username,
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

func (r *PostgresRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET avatar_url = $2 WHERE user_id = $1`,
		userID, avatarURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}
