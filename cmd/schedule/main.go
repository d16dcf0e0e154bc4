package main // Entry point for the schedule store service

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/config"
	"github.com/fmhcampus/attendance-platform/internal/database"
	"github.com/fmhcampus/attendance-platform/internal/handler"
	"github.com/fmhcampus/attendance-platform/internal/repository"
	"github.com/fmhcampus/attendance-platform/internal/router"
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// Redis is optional: a nil client disables the listing cache gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response caching disabled")
	}

	sched := handler.NewScheduleHandler(
		repository.NewScheduleRepo(db),
		client.NewRoomClient(cfg.RoomURL, cfg.UpstreamTimeout),
		client.NewRosterClient(cfg.RosterURL, cfg.UpstreamTimeout),
	)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterSchedule(e, sched, cfg.SigningSecret, rdb, config.LoadCacheConfig())

	addr := ":" + cfg.Port
	log.Printf("schedule service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
