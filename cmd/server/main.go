package main

import (
	"flag"
	"log"

	"github.com/negobench/negobench/api"
	"github.com/negobench/negobench/api/handlers"
	"github.com/negobench/negobench/communication"
	"github.com/negobench/negobench/config"
	"github.com/negobench/negobench/storage"
	"github.com/negobench/negobench/tournament"
)

func main() {
	apiPort := flag.Int("api-port", 3000, "API server port")
	dataDir := flag.String("data-dir", "./data", "Result store directory")
	natsURL := flag.String("nats", "", "NATS URL for event fan-out (empty disables)")
	flag.Parse()

	config.Load()

	store, err := storage.Open(storage.DefaultConfig(*dataDir))
	if err != nil {
		log.Fatalf("Failed to open result store: %v", err)
	}
	defer store.Close()

	broker := communication.ConnectNATS(*natsURL)
	defer broker.Close()

	runner := tournament.NewRunner(tournament.NewScheduler(store))
	h := handlers.New(runner, store, broker)

	log.Printf("Negotiation benchmark server listening on :%d", *apiPort)
	if err := api.StartServer(*apiPort, h); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
