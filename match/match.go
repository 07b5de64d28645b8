package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/negobench/negobench/agent"
	"github.com/negobench/negobench/core"
	"github.com/negobench/negobench/storage"
)

// DefaultMaxTurns is the shared hard cap across both agents (6 each).
const DefaultMaxTurns = 12

// openingPrompt is what the seller responds to on turn 1, before any
// counterpart message exists.
const openingPrompt = "A potential buyer has approached you. Open the negotiation."

// maxSilentTurns terminates the match when this many consecutive turns
// carry no offer.
const maxSilentTurns = 2

// Engine runs exactly one two-party negotiation to completion and
// persists the outcome. Sink receives one human-readable line per
// notable event; a nil sink discards them.
type Engine struct {
	Store    storage.Store
	MaxTurns int
	Sink     func(string)
}

// NewEngine returns an engine with the default turn cap.
func NewEngine(store storage.Store, sink func(string)) *Engine {
	return &Engine{Store: store, MaxTurns: DefaultMaxTurns, Sink: sink}
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Sink != nil {
		e.Sink(fmt.Sprintf(format, args...))
	}
}

// matchState is the mutable bookkeeping for one in-flight match.
type matchState struct {
	turn          int
	pendingOffer  *float64
	pendingBy     core.Role
	silentStreak  int
	dealReached   bool
	price         float64
	log           []core.TurnRecord
}

// Run drives the match to a terminal state (deal, no-deal or turn cap),
// scores it and persists the result. The seller always speaks first and
// roles alternate strictly. Cancellation is cooperative: the context is
// checked before every turn, and a cancelled match returns ctx.Err()
// without persisting anything.
func (e *Engine) Run(ctx context.Context, seller, buyer *agent.Agent, scn core.Scenario, tournamentID string) (*core.MatchResult, error) {
	order := [2]*agent.Agent{seller, buyer}
	st := &matchState{}
	incoming := openingPrompt

	for st.turn < e.MaxTurns && !st.dealReached {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		active := order[st.turn%2]
		reply, err := active.Respond(ctx, incoming)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", st.turn+1, err)
		}
		st.turn++

		record := core.TurnRecord{
			Turn:  st.turn,
			Agent: active.Name,
			Model: active.Model,
			Role:  active.Role,
			Reply: reply,
		}

		if reply.Deal {
			if reason := e.validateDealClaim(st, active.Role, reply.Offer); reason != "" {
				// Downgrade and keep going; the counterpart never sees the claim.
				record.Note = "deal claim rejected: " + reason
				record.Reply.Deal = false
				reply.Deal = false
				e.logf("[turn %d] %s (%s) deal claim rejected: %s", st.turn, active.Name, active.Role, reason)
			} else {
				st.dealReached = true
				st.price = *st.pendingOffer
			}
		}

		if !st.dealReached {
			if reply.Offer != nil {
				st.pendingOffer = reply.Offer
				st.pendingBy = active.Role
				st.silentStreak = 0
			} else {
				st.silentStreak++
			}
		}

		st.log = append(st.log, record)
		incoming = reply.Message

		if !st.dealReached && st.silentStreak >= maxSilentTurns {
			e.logf("[turn %d] %d consecutive turns without an offer, ending negotiation", st.turn, maxSilentTurns)
			break
		}
	}

	res := e.buildResult(seller, buyer, scn, tournamentID, st)
	if err := e.persist(res); err != nil {
		return nil, err
	}
	return res, nil
}

// validateDealClaim returns an empty string when a deal:true claim is
// acceptable, otherwise the rejection reason. A claim is honored only if
// an offer is pending, it was made by the other role, and the claimed
// value echoes it exactly.
func (e *Engine) validateDealClaim(st *matchState, claimant core.Role, claimed *float64) string {
	switch {
	case st.pendingOffer == nil:
		return "no offer is on the table"
	case st.pendingBy == claimant:
		return fmt.Sprintf("the pending offer was made by the %s itself", claimant)
	case claimed == nil:
		return fmt.Sprintf("claim names no offer; pending offer is %.2f", *st.pendingOffer)
	case *claimed != *st.pendingOffer:
		return fmt.Sprintf("claimed offer %.2f does not match pending offer %.2f", *claimed, *st.pendingOffer)
	default:
		return ""
	}
}

func (e *Engine) buildResult(seller, buyer *agent.Agent, scn core.Scenario, tournamentID string, st *matchState) *core.MatchResult {
	sellerScore, buyerScore := core.Scores(st.dealReached, st.price, seller.Estimate, buyer.Estimate)
	return &core.MatchResult{
		RunID:        uuid.New().String(),
		TournamentID: tournamentID,
		Timestamp:    time.Now().UTC(),
		Scenario:     scn,
		Seller: core.AgentReport{
			Name:         seller.Name,
			Model:        seller.Model,
			Role:         core.RoleSeller,
			Estimate:     seller.Estimate,
			Score:        sellerScore,
			OutputTokens: seller.OutputTokens,
		},
		Buyer: core.AgentReport{
			Name:         buyer.Name,
			Model:        buyer.Model,
			Role:         core.RoleBuyer,
			Estimate:     buyer.Estimate,
			Score:        buyerScore,
			OutputTokens: buyer.OutputTokens,
		},
		Deal:  st.dealReached,
		Price: st.price,
		Turns: st.turn,
		Log:   st.log,
	}
}

func (e *Engine) persist(res *core.MatchResult) error {
	if err := e.Store.AppendRun(res); err != nil {
		return fmt.Errorf("persist run %s: %w", res.RunID, err)
	}
	if err := e.Store.AppendManifestEntry(core.ManifestEntryFor(res)); err != nil {
		return fmt.Errorf("persist manifest entry %s: %w", res.RunID, err)
	}
	return nil
}
