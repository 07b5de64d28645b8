package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/negobench/negobench/core"
)

func openTestStore(t *testing.T) *DBStore {
	t.Helper()
	store, err := Open(Config{InMemory: true, DisableLogging: true})
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(id string) *core.MatchResult {
	return &core.MatchResult{
		RunID:     id,
		Timestamp: time.Now().UTC(),
		Scenario:  core.Scenario{Item: "carbon road bike", TrueValue: 4200, Variance: 0.2},
		Seller:    core.AgentReport{Name: "S", Model: "m1", Role: core.RoleSeller, Estimate: 4000},
		Buyer:     core.AgentReport{Name: "B", Model: "m2", Role: core.RoleBuyer, Estimate: 4400},
		Deal:      true,
		Price:     4100,
		Turns:     4,
		Log: []core.TurnRecord{
			{Turn: 1, Agent: "S", Role: core.RoleSeller},
		},
	}
}

func TestRunRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := sampleResult("run-1")
	if err := store.AppendRun(want); err != nil {
		t.Fatalf("AppendRun failed: %v", err)
	}

	got, err := store.ReadRun("run-1")
	if err != nil {
		t.Fatalf("ReadRun failed: %v", err)
	}
	if got.RunID != want.RunID || got.Price != want.Price || len(got.Log) != 1 {
		t.Errorf("round-tripped run differs: %+v", got)
	}
}

func TestReadRunUnknownID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.ReadRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestManifestOrderNewestFirst(t *testing.T) {
	store := openTestStore(t)

	manifest, err := store.ReadManifest()
	if err != nil {
		t.Fatalf("empty store must yield an empty manifest: %v", err)
	}
	if len(manifest) != 0 {
		t.Fatalf("expected empty manifest, got %d entries", len(manifest))
	}

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.AppendManifestEntry(core.ManifestEntryFor(sampleResult(id))); err != nil {
			t.Fatalf("AppendManifestEntry failed: %v", err)
		}
	}

	manifest, err = store.ReadManifest()
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if len(manifest) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(manifest))
	}
	for i, want := range []string{"run-3", "run-2", "run-1"} {
		if manifest[i].RunID != want {
			t.Errorf("manifest[%d] = %s, want %s (newest first)", i, manifest[i].RunID, want)
		}
	}
}

func TestManifestAppendLosesNothingUnderContention(t *testing.T) {
	store := openTestStore(t)

	const writers = 2
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("run-%d-%d", w, i)
				if err := store.AppendManifestEntry(core.ManifestEntryFor(sampleResult(id))); err != nil {
					t.Errorf("AppendManifestEntry %s failed: %v", id, err)
				}
			}
		}(w)
	}
	wg.Wait()

	manifest, err := store.ReadManifest()
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if len(manifest) != writers*perWriter {
		t.Errorf("got %d manifest entries, want %d: interleaved appends dropped entries", len(manifest), writers*perWriter)
	}
}
