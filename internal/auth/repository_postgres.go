package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// --------------------------------------------------
// Save user + profile + role (single transaction)
// --------------------------------------------------
func (r *PostgresUserRepository) Save(user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = "user"
	}

	ctx := context.Background()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, email, password)
		VALUES ($1, $2, $3)
	`, user.ID, user.Email, user.Password); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO profiles (user_id, username)
		VALUES ($1, $2)
	`, user.ID, user.Username); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
	`, user.ID, user.Role); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) ExistsByEmail(email string) (bool, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresUserRepository) ExistsByUsername(username string) (bool, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT 1 FROM profiles WHERE username = $1 LIMIT 1`, username)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresUserRepository) FindByEmail(email string) (*User, error) {
	query := `
		SELECT u.id, u.email, u.password, p.username, ur.role
		FROM users u
		JOIN profiles p ON p.user_id = u.id
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.email = $1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	user := &User{}
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Username, &user.Role); err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
