package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"halalbites/internal/httperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const restaurantColumns = `
	id, name, address, lat, lng, geo_status, cuisine_type,
	halal_status, price_range, opening_hours, COALESCE(description, ''),
	COALESCE(phone, ''), COALESCE(website, ''), is_sponsored,
	COALESCE(google_place_id, ''), google_data_fetched_at,
	created_at, updated_at
`

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	var res Restaurant
	err := row.Scan(
		&res.ID, &res.Name, &res.Address, &res.Lat, &res.Lng,
		&res.GeoStatus, &res.CuisineType, &res.HalalStatus, &res.PriceRange,
		&res.OpeningHours, &res.Description, &res.Phone, &res.Website,
		&res.IsSponsored, &res.GooglePlaceID, &res.GoogleDataFetchedAt,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, res *Restaurant) error {
	query := `
		INSERT INTO restaurants (
			name, address, lat, lng, geo_status, cuisine_type,
			halal_status, price_range, opening_hours, description,
			phone, website, is_sponsored,
			google_place_id, google_data_fetched_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			NULLIF($14, ''), $15)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		res.Name,
		res.Address,
		res.Lat,
		res.Lng,
		res.GeoStatus,
		res.CuisineType,
		res.HalalStatus,
		res.PriceRange,
		res.OpeningHours,
		res.Description,
		res.Phone,
		res.Website,
		res.IsSponsored,
		res.GooglePlaceID,
		res.GoogleDataFetchedAt,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// --------------------------------------------------
// Update restaurant
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, res *Restaurant) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants SET
			name = $2,
			address = $3,
			lat = $4,
			lng = $5,
			geo_status = $6,
			cuisine_type = $7,
			halal_status = $8,
			price_range = $9,
			opening_hours = $10,
			description = $11,
			phone = $12,
			website = $13,
			is_sponsored = $14,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`,
		res.ID, res.Name, res.Address, res.Lat, res.Lng, res.GeoStatus,
		res.CuisineType, res.HalalStatus, res.PriceRange, res.OpeningHours,
		res.Description, res.Phone, res.Website, res.IsSponsored,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Delete restaurant (images/reviews/favorites cascade)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	res, err := scanRestaurant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httperr.ErrNotFound
	}
	return res, err
}

// --------------------------------------------------
// Search / browse (sponsored first)
// --------------------------------------------------
func (r *PostgresRepository) Search(ctx context.Context, f Filter) ([]*Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE 1=1`
	args := []any{}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (name ILIKE $%d OR address ILIKE $%d OR cuisine_type ILIKE $%d)",
			n, n, n,
		)
	}
	if f.CuisineType != "" {
		args = append(args, f.CuisineType)
		query += fmt.Sprintf(" AND cuisine_type = $%d", len(args))
	}
	if f.HalalStatus != "" {
		args = append(args, f.HalalStatus)
		query += fmt.Sprintf(" AND halal_status = $%d", len(args))
	}
	if f.PriceRange != "" {
		args = append(args, f.PriceRange)
		query += fmt.Sprintf(" AND price_range = $%d", len(args))
	}
	if f.ForMap {
		// Unresolved coordinates never reach the map.
		query += " AND geo_status = 'resolved' AND NOT (lat = 0 AND lng = 0)"
	}

	query += " ORDER BY is_sponsored DESC, name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}
	return restaurants, rows.Err()
}

// --------------------------------------------------
// Images
// --------------------------------------------------
func (r *PostgresRepository) AddImage(ctx context.Context, img *Image) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO restaurant_images (restaurant_id, url, is_primary, uploaded_by)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid)
		RETURNING id, created_at
	`, img.RestaurantID, img.URL, img.IsPrimary, img.UploadedBy).
		Scan(&img.ID, &img.CreatedAt)
}

func (r *PostgresRepository) ListImages(ctx context.Context, restaurantID string) ([]Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, url, is_primary,
			COALESCE(uploaded_by::text, ''), created_at
		FROM restaurant_images
		WHERE restaurant_id = $1
		ORDER BY is_primary DESC, created_at ASC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID, &img.RestaurantID, &img.URL,
			&img.IsPrimary, &img.UploadedBy, &img.CreatedAt,
		); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// At most one primary image per restaurant: clear, then set, in one tx.
func (r *PostgresRepository) SetPrimaryImage(ctx context.Context, restaurantID, imageID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE restaurant_images SET is_primary = FALSE
		WHERE restaurant_id = $1
	`, restaurantID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE restaurant_images SET is_primary = TRUE
		WHERE id = $1 AND restaurant_id = $2
	`, imageID, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httperr.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) RatingSummary(ctx context.Context, restaurantID string) (float64, int, error) {
	var avg float64
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&avg, &count)
	return avg, count, err
}
