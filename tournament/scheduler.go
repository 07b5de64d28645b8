package tournament

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/negobench/negobench/agent"
	"github.com/negobench/negobench/ai"
	"github.com/negobench/negobench/core"
	"github.com/negobench/negobench/match"
	"github.com/negobench/negobench/scenario"
	"github.com/negobench/negobench/storage"
)

// Options configures one tournament invocation.
type Options struct {
	// Models are roster entries: display aliases resolved through the
	// alias table, with unknown aliases passed through as raw ids.
	Models []string
	Rounds int
	// Label groups all matches of this invocation; synthesized when empty.
	Label string
	// Sink receives one human-readable progress line per event.
	Sink func(string)
}

// Scheduler expands a model roster into an exhaustive round-robin with
// role swap and runs every pairing strictly sequentially.
type Scheduler struct {
	Store     storage.Store
	Scenarios *scenario.Generator

	// NewGenerator is injectable for tests; nil means the real provider
	// clients.
	NewGenerator func(model string) ai.Generator
}

// NewScheduler returns a scheduler drawing scenarios from a time-seeded
// source.
func NewScheduler(store storage.Store) *Scheduler {
	return &Scheduler{
		Store:     store,
		Scenarios: scenario.NewSeeded(time.Now().UnixNano()),
	}
}

func (s *Scheduler) generatorFor(model string) ai.Generator {
	if s.NewGenerator != nil {
		return s.NewGenerator(model)
	}
	return ai.NewGenerator(model)
}

// Run executes the full schedule: for every round, for every unordered
// pair of roster entries, two matches with swapped roles, each with a
// fresh scenario draw. Cancellation is checked between matches and is a
// clean stop, not an error; per-match failures are logged and skipped.
// An unexpected scheduling failure is the only error return.
func (s *Scheduler) Run(ctx context.Context, opts Options) error {
	if len(opts.Models) < 2 {
		return fmt.Errorf("tournament needs at least 2 models, got %d", len(opts.Models))
	}
	if opts.Rounds < 1 {
		return fmt.Errorf("tournament needs at least 1 round, got %d", opts.Rounds)
	}

	sink := opts.Sink
	if sink == nil {
		sink = func(string) {}
	}

	label := opts.Label
	if label == "" {
		label = randomLabel(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	total := len(opts.Models) * (len(opts.Models) - 1) * opts.Rounds
	sink(fmt.Sprintf("tournament %s started: %d models, %d rounds, %d matches",
		label, len(opts.Models), opts.Rounds, total))

	engine := match.NewEngine(s.Store, sink)
	played := 0

	for round := 1; round <= opts.Rounds; round++ {
		sink(fmt.Sprintf("round %d/%d", round, opts.Rounds))

		for i := 0; i < len(opts.Models); i++ {
			for j := i + 1; j < len(opts.Models); j++ {
				if ctx.Err() != nil {
					sink(fmt.Sprintf("tournament %s cancelled after %d matches", label, played))
					return nil
				}

				// Both orderings, so every model plays both roles
				// against every opponent in every round.
				pairings := [2][2]string{
					{opts.Models[i], opts.Models[j]},
					{opts.Models[j], opts.Models[i]},
				}
				for _, p := range pairings {
					if ctx.Err() != nil {
						sink(fmt.Sprintf("tournament %s cancelled after %d matches", label, played))
						return nil
					}
					if err := s.runOne(ctx, engine, p[0], p[1], label, sink); err != nil {
						if errors.Is(err, context.Canceled) {
							sink(fmt.Sprintf("tournament %s cancelled after %d matches", label, played))
							return nil
						}
						sink(fmt.Sprintf("match %s vs %s failed: %v", p[0], p[1], err))
						continue
					}
					played++
				}
			}
		}
	}

	sink(fmt.Sprintf("tournament %s complete: %d matches played", label, played))
	return nil
}

// runOne plays a single match with sellerAlias selling to buyerAlias.
func (s *Scheduler) runOne(ctx context.Context, engine *match.Engine, sellerAlias, buyerAlias, label string, sink func(string)) error {
	sellerModel := ai.ResolveModel(sellerAlias)
	buyerModel := ai.ResolveModel(buyerAlias)

	scn := s.Scenarios.Pick()
	sellerEstimate := s.Scenarios.Estimate(scn)
	buyerEstimate := s.Scenarios.Estimate(scn)

	seller := agent.New(sellerAlias, sellerModel, core.RoleSeller, scn.Item, sellerEstimate, s.generatorFor(sellerModel))
	buyer := agent.New(buyerAlias, buyerModel, core.RoleBuyer, scn.Item, buyerEstimate, s.generatorFor(buyerModel))

	sink(fmt.Sprintf("match: %s (seller) vs %s (buyer) over %s", sellerAlias, buyerAlias, scn.Item))

	res, err := engine.Run(ctx, seller, buyer, scn, label)
	if err != nil {
		return err
	}

	if res.Deal {
		sink(fmt.Sprintf("deal at %.0f after %d turns: seller %+.3f, buyer %+.3f",
			res.Price, res.Turns, res.Seller.Score, res.Buyer.Score))
	} else {
		sink(fmt.Sprintf("no deal after %d turns", res.Turns))
	}
	return nil
}
