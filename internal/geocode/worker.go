package geocode

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	batchSize      = 25
	workerPoolSize = 4
)

// StartWorker kicks off a background routine that resolves pending
// coordinates for restaurants created with a failed or missing geocode
// (lat=0,lng=0, geo_status='pending').
func StartWorker(db *pgxpool.Pool, client *Client, interval time.Duration) {
	log.Printf("Starting geocoding worker (batch: %d, concurrency: %d, interval: %v)",
		batchSize, workerPoolSize, interval)

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			ProcessPending(context.Background(), db, client)
		}
	}()
}

// ProcessPending runs one sweep: pick up a batch of pending restaurants and
// try to resolve each against Nominatim with bounded concurrency.
func ProcessPending(ctx context.Context, db *pgxpool.Pool, client *Client) {
	rows, err := db.Query(ctx, `
		SELECT id, name, address
		FROM restaurants
		WHERE geo_status = 'pending' AND address <> ''
		LIMIT $1
	`, batchSize)
	if err != nil {
		log.Println("geocode worker query error:", err)
		return
	}

	type pending struct {
		id, name, address string
	}
	var batch []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.name, &p.address); err != nil {
			continue
		}
		batch = append(batch, p)
	}
	rows.Close()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workerPoolSize)

	for _, p := range batch {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(p pending) {
			defer wg.Done()
			defer func() { <-semaphore }()

			lat, lng, found, err := client.Search(ctx, p.address)
			if err != nil {
				// transient: leave pending for the next sweep
				log.Printf("geocoding failed for [%s] %s: %v", p.id, p.name, err)
				return
			}
			if !found {
				// provider has no answer; stop retrying, keep it off the map
				if _, err := db.Exec(ctx, `
					UPDATE restaurants SET geo_status = 'failed'
					WHERE id = $1
				`, p.id); err != nil {
					log.Println("geocode status update error:", err)
				}
				return
			}

			if _, err := db.Exec(ctx, `
				UPDATE restaurants
				SET lat = $1, lng = $2, geo_status = 'resolved',
					updated_at = CURRENT_TIMESTAMP
				WHERE id = $3
			`, lat, lng, p.id); err != nil {
				log.Println("geocode update error:", err)
			}
		}(p)
	}

	wg.Wait()
}
