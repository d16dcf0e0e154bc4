package main // Entry point for the attendance (presence orchestrator) service

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/config"
	"github.com/fmhcampus/attendance-platform/internal/database"
	"github.com/fmhcampus/attendance-platform/internal/handler"
	"github.com/fmhcampus/attendance-platform/internal/orchestrator"
	"github.com/fmhcampus/attendance-platform/internal/queue"
	"github.com/fmhcampus/attendance-platform/internal/repository"
	"github.com/fmhcampus/attendance-platform/internal/router"
	queue_publisher "github.com/fmhcampus/attendance-platform/internal/service"
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

	// Redis is optional: a nil client disables rate limiting gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	ledger := repository.NewAttendanceRepo(db)
	orch := &orchestrator.Orchestrator{
		SigningSecret: cfg.SigningSecret,
		Directory:     client.NewDirectoryClient(cfg.DirectoryURL, cfg.UpstreamTimeout),
		Schedules:     client.NewScheduleClient(cfg.ScheduleURL, cfg.UpstreamTimeout),
		Roster:        client.NewRosterClient(cfg.RosterURL, cfg.UpstreamTimeout),
		Ledger:        ledger,
		Publish:       queue_publisher.PublishPresenceRecorded,
	}

	// Background consumer mirrors committed presence events into
	// logs/presence.log; it reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartPresenceConsumer(); err != nil {
			log.Printf("presence consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAttendance(e,
		handler.NewCredentialHandler(cfg),
		handler.NewAttendanceHandler(orch, ledger),
		cfg.SigningSecret, rdb, config.LoadRateLimitConfig())

	addr := ":" + cfg.Port
	log.Printf("attendance service listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
