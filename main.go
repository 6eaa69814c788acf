package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kickoff-hq-service/handlers"
	"kickoff-hq-service/middleware"
	"kickoff-hq-service/models"
	"kickoff-hq-service/services"
	"kickoff-hq-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.HQState{},
		&models.HQUnit{},
		&models.HQDecor{},
		&models.DrillSlot{},
		&models.DailyMission{},
		&models.MatchRecord{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	missionService := services.NewMissionService(db)
	hqService := services.NewHQService(db, missionService)
	drillService := services.NewDrillService(db, missionService)
	matchService := services.NewMatchService(db, missionService, services.NewRand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollEnergyRegen(ctx, db, 6*time.Minute)

	missionService.StartRolloverScheduler()

	handlers.SetupHQRoutes(app, hqService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupDrillRoutes(app, drillService)
	handlers.SetupMissionRoutes(app, missionService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ HQ service running on http://localhost:%s", port)
	log.Println("✅ Energy regeneration worker running (every 6m)")
	log.Println("✅ Mission prune scheduler running (hourly)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
