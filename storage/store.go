package storage

import "github.com/negobench/negobench/core"

// Store is the durable result store contract: immutable per-run records
// plus a denormalized newest-first manifest index for fast listing.
// A single scheduler owns the store for the duration of one tournament,
// so no concurrent writers are assumed.
type Store interface {
	AppendRun(res *core.MatchResult) error
	AppendManifestEntry(entry core.ManifestEntry) error
	ReadManifest() ([]core.ManifestEntry, error)
	ReadRun(id string) (*core.MatchResult, error)
	Close() error
}
