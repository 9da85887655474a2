// The worker drains the generation.completed queue and applies usage
// accounting to account records.  It runs alongside the API server and is
// the only writer of the total_generations counter.
package main

import (
	"log"

	"github.com/aiverse/aiverse-api/internal/config"
	"github.com/aiverse/aiverse-api/internal/database"
	"github.com/aiverse/aiverse-api/internal/queue"
	"github.com/aiverse/aiverse-api/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	log.Printf("generation consumer starting (env=%s)", cfg.Env)
	if err := queue.StartGenerationConsumer(cfg.AMQPURL, repository.NewAccountRepo(db)); err != nil {
		log.Fatal(err)
	}
}
