package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/negobench/negobench/ai"
	"github.com/negobench/negobench/communication"
	"github.com/negobench/negobench/core"
	"github.com/negobench/negobench/scenario"
	"github.com/negobench/negobench/tournament"
)

type memStore struct {
	mu       sync.Mutex
	runs     map[string]*core.MatchResult
	manifest []core.ManifestEntry
}

func newMemStore() *memStore {
	return &memStore{runs: make(map[string]*core.MatchResult)}
}

func (s *memStore) AppendRun(res *core.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[res.RunID] = res
	return nil
}

func (s *memStore) AppendManifestEntry(entry core.ManifestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifest = append([]core.ManifestEntry{entry}, s.manifest...)
	return nil
}

func (s *memStore) ReadManifest() ([]core.ManifestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ManifestEntry(nil), s.manifest...), nil
}

func (s *memStore) ReadRun(id string) (*core.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id], nil
}

func (s *memStore) Close() error { return nil }

type silentGen struct{}

func (silentGen) Generate(ctx context.Context, systemPrompt string, transcript []core.Message, cfg ai.SamplingConfig) (ai.Completion, error) {
	return ai.Completion{Text: `{"thought":"pass","message":"No offer from me.","offer":null,"deal":false}`}, nil
}

// eventRecorder captures broadcast events in order.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) record(eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *eventRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestHandlers(rec *eventRecorder) *Handlers {
	sched := &tournament.Scheduler{
		Store:        newMemStore(),
		Scenarios:    scenario.NewSeeded(1),
		NewGenerator: func(model string) ai.Generator { return silentGen{} },
	}
	h := New(tournament.NewRunner(sched), sched.Store, nil)
	h.broadcast = rec.record
	return h
}

func TestStartEventPrecedesLogLines(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &eventRecorder{}
	h := newTestHandlers(rec)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/tournaments",
		strings.NewReader(`{"models":["A","B"],"rounds":1,"label":"order-test"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.StartTournament(c)
	if w.Code != 202 {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	deadline := time.After(5 * time.Second)
	for {
		events := rec.snapshot()
		if len(events) > 0 && events[len(events)-1] == communication.EventTournamentComplete {
			if events[0] != communication.EventTournamentStart {
				t.Errorf("first broadcast event = %s, want %s", events[0], communication.EventTournamentStart)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("tournament never completed, events: %v", events)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStopWithNothingActiveIsNoOp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(&eventRecorder{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/tournaments/stop", nil)

	h.StopTournament(c)
	if w.Code != 200 {
		t.Fatalf("stop with no active tournament must succeed, got %d", w.Code)
	}
}
