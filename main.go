package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fan-hub-api/handlers"
	"fan-hub-api/middleware"
	"fan-hub-api/models"
	"fan-hub-api/services"
	"fan-hub-api/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	db, err := openDatabase()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&models.Fan{},
		&models.FanBadge{},
		&models.Outfit{},
		&models.OutfitComment{},
		&models.Vote{},
		&models.Question{},
		&models.Wallpaper{},
	); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "Fan Hub API",
		BodyLimit: 1 * 1024 * 1024, // JSON only, images are external URLs
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(middleware.ClientIdentity())

	gamificationService := services.NewGamificationService(db)
	quotaService := services.NewQuotaService(openRedis(), services.DailyQuestionLimit)
	fanService := services.NewFanService(db)
	outfitService := services.NewOutfitService(db, gamificationService)
	voteService := services.NewVoteService(db, gamificationService)
	questionService := services.NewQuestionService(db, gamificationService, quotaService)
	wallpaperService := services.NewWallpaperService(db, gamificationService)

	recountWorker := workers.NewRecountWorker(db, 5*time.Minute)
	if err := recountWorker.Start(); err != nil {
		log.Fatal("failed to start recount worker: ", err)
	}

	handlers.SetupFanRoutes(app, fanService)
	handlers.SetupOutfitRoutes(app, outfitService)
	handlers.SetupVoteRoutes(app, voteService)
	handlers.SetupQuestionRoutes(app, questionService)
	handlers.SetupWallpaperRoutes(app, wallpaperService)
	handlers.SetupPlatformRoutes(app, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()
	log.Printf("Fan Hub API running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	recountWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Database connection closed.")
}

// openDatabase connects to Postgres when DATABASE_URL is set, otherwise to a
// local sqlite file for development. TranslateError makes unique-index
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "fanhub.db"
	}
	log.Printf("DATABASE_URL not set, using sqlite at %s", path)
	return gorm.Open(sqlite.Open(path), cfg)
}

// openRedis returns a client when REDIS_ADDR is configured, nil otherwise
// (the quota service falls back to its in-memory counter).
func openRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s (%v), question quota falls back to memory", addr, err)
		return nil
	}
	log.Printf("Redis connected at %s", addr)
	return rdb
}

func allowedOrigins() string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return "http://localhost:3000"
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
