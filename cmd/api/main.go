package main

import (
	"context"
	"log"
	"os"
	"time"

	"halalbites/internal/auth"
	"halalbites/internal/cache"
	"halalbites/internal/config"
	"halalbites/internal/db"
	"halalbites/internal/favorite"
	"halalbites/internal/geocode"
	"halalbites/internal/middleware"
	"halalbites/internal/moderation"
	"halalbites/internal/places"
	"halalbites/internal/profile"
	"halalbites/internal/request"
	"halalbites/internal/restaurant"
	"halalbites/internal/review"
	"halalbites/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	cfg := config.Load()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── CACHE ─────────────────────────
	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── EXTERNAL CLIENTS ─────────────────────────
	moderator := moderation.NewClient()
	geocoder := geocode.NewClient(redisCache)
	placesClient := places.NewClient(redisCache)

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	reviewRepo := review.NewPostgresRepository(pgDB)
	favoriteRepo := favorite.NewPostgresRepository(pgDB)
	profileRepo := profile.NewPostgresRepository(pgDB)
	requestRepo := request.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	restaurantService := restaurant.NewService(
		restaurantRepo,
		r2Client,
		moderator,
		geocoder,
		cfg.MaxImagesPerUpload,
	)

	reviewService := review.NewService(reviewRepo, r2Client, moderator, cfg.MaxImagesPerUpload)
	favoriteService := favorite.NewService(favoriteRepo)
	profileService := profile.NewService(profileRepo, r2Client, moderator)
	requestService := request.NewService(requestRepo, restaurantService)
	importer := places.NewImporter(placesClient, restaurantService, r2Client)

	// ───────────────────────── HANDLERS ─────────────────────────
	restaurantHandler := restaurant.NewHandler(restaurantService)
	reviewHandler := review.NewHandler(reviewService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	profileHandler := profile.NewHandler(profileService)
	requestHandler := request.NewHandler(requestService)
	placesHandler := places.NewHandler(placesClient, importer)
	geocodeHandler := geocode.NewHandler(geocoder)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	r.GET("/restaurants", restaurantHandler.List)
	r.GET("/restaurants/:id", restaurantHandler.Get)
	r.GET("/restaurants/:id/images", restaurantHandler.ListImages)
	r.GET("/restaurants/:id/reviews", reviewHandler.ListByRestaurant)
	r.GET("/users/:username", profileHandler.GetPublic)

	placesGroup := r.Group("/places")
	{
		placesGroup.POST("/session", placesHandler.NewSession)
		placesGroup.GET("/autocomplete", placesHandler.Autocomplete)
	}

	geocodeGroup := r.Group("/geocode")
	{
		geocodeGroup.GET("/search", geocodeHandler.Search)
		geocodeGroup.GET("/reverse", geocodeHandler.Reverse)
	}

	// ───────────────────────── AUTHENTICATED ROUTES ─────────────────────────
	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		// Reviews
		authed.POST("/restaurants/:id/reviews", reviewHandler.Create)
		authed.PUT("/reviews/:id", reviewHandler.Update)
		authed.DELETE("/reviews/:id", reviewHandler.Delete)
		authed.POST("/reviews/:id/images", reviewHandler.UploadImages)

		// Favorites
		authed.GET("/favorites", favoriteHandler.ListEntries)
		authed.GET("/favorites/lists", favoriteHandler.Lists)
		authed.POST("/favorites/toggle", favoriteHandler.Toggle)
		authed.PUT("/favorites/move", favoriteHandler.Move)
		authed.PUT("/favorites/lists/rename", favoriteHandler.RenameList)
		authed.DELETE("/favorites/lists/:name", favoriteHandler.DeleteList)

		// Profile
		authed.GET("/profile/me", profileHandler.Me)
		authed.PUT("/profile/username", profileHandler.UpdateUsername)
		authed.POST("/profile/avatar", profileHandler.UploadAvatar)

		// Restaurant suggestions
		authed.POST("/requests", requestHandler.Create)
		authed.GET("/requests/mine", requestHandler.ListMine)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("admin"),
	)
	{
		// Restaurants
		admin.POST("/restaurants", restaurantHandler.Create)
		admin.PUT("/restaurants/:id", restaurantHandler.Update)
		admin.DELETE("/restaurants/:id", restaurantHandler.Delete)
		admin.POST("/restaurants/:id/images", restaurantHandler.UploadImages)
		admin.PUT("/restaurants/:id/images/:imageID/primary", restaurantHandler.SetPrimaryImage)

		// Google Places import
		admin.POST("/places/import", placesHandler.Import)

		// Suggestion review queue
		admin.GET("/requests", requestHandler.ListByStatus)
		admin.POST("/requests/:id/approve", requestHandler.Approve)
		admin.POST("/requests/:id/reject", requestHandler.Reject)
	}

	// ───────────────────────── GEOCODE WORKER ─────────────────────────
	geocode.StartWorker(pgDB, geocoder, time.Duration(cfg.GeocodeInterval)*time.Second)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:" + cfg.ServerPort)
	r.Run(":" + cfg.ServerPort)
}
