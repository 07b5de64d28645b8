package agent

import (
	"context"
	"testing"

	"github.com/negobench/negobench/ai"
	"github.com/negobench/negobench/core"
)

// mockGenerator replays canned completions in order.
type mockGenerator struct {
	replies []ai.Completion
	calls   int
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt string, transcript []core.Message, cfg ai.SamplingConfig) (ai.Completion, error) {
	reply := m.replies[m.calls%len(m.replies)]
	m.calls++
	return reply, nil
}

func TestRespondTranscriptAndTokens(t *testing.T) {
	gen := &mockGenerator{replies: []ai.Completion{
		{Text: `{"thought":"open high","message":"I want 50000.","offer":50000,"deal":false}`, OutputTokens: 42},
		{Text: `{"thought":"concede","message":"45000 then.","offer":45000,"deal":false}`, OutputTokens: 0},
	}}
	a := New("Alice", "gpt-4o", core.RoleSeller, "used pickup truck", 38000, gen)

	reply, err := a.Respond(context.Background(), "Hello, what do you want for it?")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if reply.Offer == nil || *reply.Offer != 50000 {
		t.Errorf("expected offer 50000, got %v", reply.Offer)
	}
	if len(a.Transcript) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(a.Transcript))
	}
	if a.Transcript[0].Speaker != core.SpeakerOther {
		t.Errorf("incoming message should be stored as counterpart turn")
	}
	if a.Transcript[1].Speaker != core.SpeakerSelf {
		t.Errorf("own reply should be stored as self turn")
	}
	if a.OutputTokens != 42 {
		t.Errorf("expected 42 output tokens, got %d", a.OutputTokens)
	}

	// Missing usage accumulates as zero, not an error.
	if _, err := a.Respond(context.Background(), "Too much."); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if a.OutputTokens != 42 {
		t.Errorf("missing usage should add zero tokens, got %d", a.OutputTokens)
	}
	if len(a.Transcript) != 4 {
		t.Errorf("expected 4 transcript entries, got %d", len(a.Transcript))
	}
}

func TestRespondMalformedOutputFallsBack(t *testing.T) {
	raw := "I think fifty grand sounds about right, take it or leave it."
	gen := &mockGenerator{replies: []ai.Completion{{Text: raw, OutputTokens: 7}}}
	a := New("Bob", "gpt-4o", core.RoleBuyer, "carbon road bike", 4000, gen)

	reply, err := a.Respond(context.Background(), "Make me an offer.")
	if err != nil {
		t.Fatalf("malformed output must not error out of the agent: %v", err)
	}
	if reply.Thought != "Failed to parse JSON output" {
		t.Errorf("unexpected fallback thought: %q", reply.Thought)
	}
	if reply.Message != raw {
		t.Errorf("fallback message should carry the raw text")
	}
	if reply.Offer != nil || reply.Deal {
		t.Errorf("fallback reply must have no offer and no deal claim")
	}
	if a.Transcript[len(a.Transcript)-1].Text != raw {
		t.Errorf("raw text should join the transcript even when unparsable")
	}
}
