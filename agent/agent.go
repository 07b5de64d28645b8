package agent

import (
	"context"
	"fmt"

	"github.com/negobench/negobench/ai"
	"github.com/negobench/negobench/core"
)

// Agent wraps one negotiating party for the duration of a single match:
// identity, role, private estimate, conversation transcript and running
// token count. Agents carry no state across matches.
type Agent struct {
	Name         string
	Model        string
	Role         core.Role
	Item         string
	Estimate     float64
	Transcript   []core.Message
	OutputTokens int

	gen      ai.Generator
	sampling ai.SamplingConfig
}

// New creates an agent backed by the given generator. The sampling config
// is resolved once here from the model identifier.
func New(name, model string, role core.Role, item string, estimate float64, gen ai.Generator) *Agent {
	return &Agent{
		Name:     name,
		Model:    model,
		Role:     role,
		Item:     item,
		Estimate: estimate,
		gen:      gen,
		sampling: ai.SamplingFor(model),
	}
}

// Respond takes the counterpart's latest message (empty on the opening
// turn handled by the engine's fixed prompt), queries the model and
// returns a normalized reply. Malformed model output is never an error:
// it degrades to a fallback reply with no offer and no deal.
func (a *Agent) Respond(ctx context.Context, incoming string) (core.StructuredReply, error) {
	if incoming != "" {
		a.Transcript = append(a.Transcript, core.Message{Speaker: core.SpeakerOther, Text: incoming})
	}

	completion, err := a.gen.Generate(ctx, a.systemPrompt(), a.Transcript, a.sampling)
	if err != nil {
		return core.StructuredReply{}, fmt.Errorf("agent %s (%s): %w", a.Name, a.Role, err)
	}

	// The raw text joins the transcript whether or not it parses, so the
	// model always sees its own prior output verbatim.
	a.Transcript = append(a.Transcript, core.Message{Speaker: core.SpeakerSelf, Text: completion.Text})
	a.OutputTokens += completion.OutputTokens

	return ParseReply(completion.Text), nil
}

func (a *Agent) systemPrompt() string {
	var goal string
	if a.Role == core.RoleSeller {
		goal = fmt.Sprintf("You are selling a %s. You privately believe it is worth $%.0f. Sell for as much above that as you can.", a.Item, a.Estimate)
	} else {
		goal = fmt.Sprintf("You are buying a %s. You privately believe it is worth $%.0f. Buy for as little below that as you can.", a.Item, a.Estimate)
	}

	return fmt.Sprintf(`You are %s, a skilled %s in a price negotiation.

%s

Rules:
1. Be competitive but realistic. Haggle hard, concede gradually.
2. Never accept a price that is worse for you than walking away with no deal.
3. You have exactly 6 of your own turns before the negotiation is cut off.
4. Set "deal" to true ONLY to accept the other party's most recent offer, and in that case "offer" must echo that exact value.
5. Never reveal your private valuation.

Respond with a single JSON object and nothing else:
{"thought": "<private reasoning, hidden from the other party>", "message": "<what you say to the other party>", "offer": <price you are naming, or null>, "deal": <true or false>}`,
		a.Name, a.Role, goal)
}
