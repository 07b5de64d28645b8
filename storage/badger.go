package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/negobench/negobench/core"
)

const (
	runKeyPrefix = "run/"
	manifestKey  = "manifest"
)

// ErrRunNotFound is returned by ReadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Config holds BadgerDB settings for the result store.
type Config struct {
	DataDir        string
	InMemory       bool
	SyncWrites     bool
	DisableLogging bool
}

// DefaultConfig returns on-disk settings rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		SyncWrites:     true,
		DisableLogging: true,
	}
}

// DBStore is the BadgerDB-backed Store. Run records are written once
// under run/<id>; the manifest lives under a single key and is
// read-modify-written per match. The manifest mutex serializes that
// read-modify-write so an appended entry can never be lost to an
// interleaved writer.
type DBStore struct {
	db         *badger.DB
	config     Config
	manifestMu sync.Mutex
}

// Open opens (or initializes from empty) a result store.
func Open(config Config) (*DBStore, error) {
	opts := badger.DefaultOptions(filepath.Join(config.DataDir, "results"))
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = config.SyncWrites
	if config.DisableLogging {
		opts.Logger = nil
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return &DBStore{db: db, config: config}, nil
}

func (s *DBStore) putObject(key string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	s.logOperation("put", key, err)
	return err
}

func (s *DBStore) getObject(key string, obj interface{}) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, obj)
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		s.logOperation("get", key, err)
	}
	return err
}

func (s *DBStore) logOperation(op, key string, err error) {
	if err != nil {
		log.Printf("result store %s failed for key %s: %v", op, key, err)
	}
}

// AppendRun writes one immutable match record keyed by run id.
func (s *DBStore) AppendRun(res *core.MatchResult) error {
	return s.putObject(runKeyPrefix+res.RunID, res)
}

// AppendManifestEntry prepends a summary to the manifest index, keeping
// it ordered most-recent-first. The read and the write happen under one
// lock and one transaction, so concurrent appenders cannot drop each
// other's entries.
func (s *DBStore) AppendManifestEntry(entry core.ManifestEntry) error {
	s.manifestMu.Lock()
	defer s.manifestMu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		var manifest []core.ManifestEntry
		item, err := txn.Get([]byte(manifestKey))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// first entry ever
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &manifest)
			}); err != nil {
				return err
			}
		}

		updated := make([]core.ManifestEntry, 0, len(manifest)+1)
		updated = append(updated, entry)
		updated = append(updated, manifest...)
		data, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		return txn.Set([]byte(manifestKey), data)
	})
	s.logOperation("manifest append", manifestKey, err)
	return err
}

// ReadManifest returns the ordered index; an empty store yields an empty
// list, not an error.
func (s *DBStore) ReadManifest() ([]core.ManifestEntry, error) {
	var manifest []core.ManifestEntry
	err := s.getObject(manifestKey, &manifest)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []core.ManifestEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return manifest, nil
}

// ReadRun loads one full match record.
func (s *DBStore) ReadRun(id string) (*core.MatchResult, error) {
	var res core.MatchResult
	err := s.getObject(runKeyPrefix+id, &res)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}
	return &res, nil
}

// Close closes the underlying database.
func (s *DBStore) Close() error {
	return s.db.Close()
}
