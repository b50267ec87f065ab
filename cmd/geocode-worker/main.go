package main

import (
	"context"
	"log"
	"os"
	"time"

	"halalbites/internal/cache"
	"halalbites/internal/config"
	"halalbites/internal/db"
	"halalbites/internal/geocode"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🗺️  Geocoding worker starting...")

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	cfg := config.Load()

	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client := geocode.NewClient(redisCache)

	interval := time.Duration(cfg.GeocodeInterval) * time.Second
	log.Printf("✅ Geocoding worker initialized, sweeping every %v. Press Ctrl+C to stop.", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		geocode.ProcessPending(context.Background(), pgDB, client)
	}
}
