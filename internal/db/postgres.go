package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// ENUM TYPES
	// -------------------------------
	enumSQL := `
		DO $$ BEGIN
			CREATE TYPE app_role AS ENUM ('admin', 'moderator', 'user');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;

		DO $$ BEGIN
			CREATE TYPE halal_status AS ENUM ('Full', 'Partial');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;

		DO $$ BEGIN
			CREATE TYPE price_range AS ENUM ('$', '$$', '$$$', '$$$$');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;

		DO $$ BEGIN
			CREATE TYPE request_status AS ENUM ('pending', 'approved', 'rejected');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;
	`
	if _, err := pool.Exec(ctx, enumSQL); err != nil {
		return err
	}

	// -------------------------------
	// USERS + PROFILES + ROLES
	// -------------------------------
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			username VARCHAR(100) UNIQUE NOT NULL,
			avatar_url TEXT,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			role app_role NOT NULL DEFAULT 'user'
		);
	`
	if _, err := pool.Exec(ctx, usersSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANTS + IMAGES
	// -------------------------------
	restaurantsSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION NOT NULL DEFAULT 0,
			lng DOUBLE PRECISION NOT NULL DEFAULT 0,
			geo_status VARCHAR(20) NOT NULL DEFAULT 'resolved',
			cuisine_type VARCHAR(100) NOT NULL DEFAULT 'Other',
			halal_status halal_status NOT NULL DEFAULT 'Full',
			price_range price_range NOT NULL DEFAULT '$$',
			opening_hours JSONB,
			description TEXT,
			phone VARCHAR(50),
			website TEXT,
			is_sponsored BOOLEAN NOT NULL DEFAULT FALSE,
			google_place_id VARCHAR(255) UNIQUE,
			google_data_fetched_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_restaurants_geo_pending
			ON restaurants (geo_status)
			WHERE geo_status = 'pending';

		CREATE TABLE IF NOT EXISTS restaurant_images (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			is_primary BOOLEAN NOT NULL DEFAULT FALSE,
			uploaded_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := pool.Exec(ctx, restaurantsSQL); err != nil {
		return err
	}

	// -------------------------------
	// REVIEWS
	// -------------------------------
	reviewsSQL := `
		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, restaurant_id)
		);

		CREATE TABLE IF NOT EXISTS review_images (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			review_id UUID NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
			url TEXT NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, reviewsSQL); err != nil {
		return err
	}

	// -------------------------------
	// FAVORITES
	// -------------------------------
	favoritesSQL := `
		CREATE TABLE IF NOT EXISTS favorites (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			list_name VARCHAR(100) NOT NULL DEFAULT 'Favorites',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, restaurant_id, list_name)
		);
	`
	if _, err := pool.Exec(ctx, favoritesSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANT REQUESTS (user submissions)
	// -------------------------------
	requestsSQL := `
		CREATE TABLE IF NOT EXISTS restaurant_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			submission_data JSONB NOT NULL,
			status request_status NOT NULL DEFAULT 'pending',
			admin_notes TEXT,
			restaurant_id UUID REFERENCES restaurants(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := pool.Exec(ctx, requestsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
