package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables.
// Required keys are validated in main; everything here carries a default so
// optional integrations (Places, Redis, moderation) can degrade instead of
// blocking startup.
type Config struct {
	ServerPort  string
	DatabaseURL string
	JWTSecret   string

	// Cloudflare R2 (S3-compatible)
	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string

	// Google Places (New). Empty key disables the import feature.
	PlacesAPIKey string

	// LLM moderation. Empty key means every check fails open.
	ModerationAPIKey string
	ModerationModel  string

	// Nominatim
	NominatimBaseURL string
	GeocodeInterval  int // seconds between worker sweeps

	// Redis cache (optional)
	RedisAddr string
	RedisPass string
	RedisDB   int

	MaxImagesPerUpload int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),

		PlacesAPIKey: os.Getenv("PLACES_API_KEY"),

		ModerationAPIKey: os.Getenv("MODERATION_API_KEY"),
		ModerationModel:  getEnv("MODERATION_MODEL", "gemini-1.5-flash"),

		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeInterval:  getEnvInt("GEOCODE_INTERVAL_SECONDS", 30),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		MaxImagesPerUpload: getEnvInt("MAX_IMAGES_PER_UPLOAD", 10),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
