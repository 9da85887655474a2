package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/client"
	"github.com/aiverse/aiverse-api/internal/config"
	"github.com/aiverse/aiverse-api/internal/database"
	"github.com/aiverse/aiverse-api/internal/handler"
	"github.com/aiverse/aiverse-api/internal/repository"
	"github.com/aiverse/aiverse-api/internal/router"
	"github.com/aiverse/aiverse-api/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response caching disabled")
	}

	accounts := repository.NewAccountRepo(db)
	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, accounts),
		Profile: handler.NewProfileHandler(accounts),
		Generation: handler.NewGenerationHandler(
			client.NewCaptionAPI(cfg.CaptionServiceURL),
			client.NewVoiceAPI(cfg.VoiceServiceURL),
			service.NewEventPublisher(cfg.AMQPURL),
		),
	}

	e := echo.New()
	e.Validator = handler.NewValidator()
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
