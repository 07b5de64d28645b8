package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/negobench/negobench/config"
	"github.com/negobench/negobench/storage"
	"github.com/negobench/negobench/tournament"
)

// duel runs the round-robin once for exactly two models and prints every
// progress line, for quick head-to-head comparisons without the server.
func main() {
	seller := flag.String("a", "GPT-4o Mini", "first model alias")
	buyer := flag.String("b", "GPT-4o", "second model alias")
	rounds := flag.Int("rounds", 1, "number of rounds")
	dataDir := flag.String("data-dir", "./data", "Result store directory")
	flag.Parse()

	config.Load()

	store, err := storage.Open(storage.DefaultConfig(*dataDir))
	if err != nil {
		log.Fatalf("Failed to open result store: %v", err)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sched := tournament.NewScheduler(store)
	err = sched.Run(ctx, tournament.Options{
		Models: []string{*seller, *buyer},
		Rounds: *rounds,
		Sink:   func(line string) { fmt.Println(line) },
	})
	if err != nil {
		log.Fatalf("Duel failed: %v", err)
	}
}
