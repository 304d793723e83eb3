package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/config"
	"github.com/iliyamo/iot-telemetry/internal/database"
	"github.com/iliyamo/iot-telemetry/internal/handler"
	"github.com/iliyamo/iot-telemetry/internal/middleware"
	"github.com/iliyamo/iot-telemetry/internal/queue"
	"github.com/iliyamo/iot-telemetry/internal/repository"
	"github.com/iliyamo/iot-telemetry/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	sensors := repository.NewSensorRepo(db)
	readings := repository.NewReadingRepo(db)
	users := repository.NewUserRepo(db)

	sensorHandler := handler.NewSensorHandler(sensors)
	readingHandler := handler.NewReadingHandler(readings, true)
	authHandler := handler.NewAuthHandler(cfg, users)

	// Background consumer appends reading.recorded events to the telemetry
	// log; it reconnects on its own and never blocks startup.
	go queue.StartReadingConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rateMW)
	router.RegisterTelemetry(e, sensorHandler, readingHandler, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
