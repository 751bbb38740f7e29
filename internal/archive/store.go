// Package archive persists timing run snapshots so reports can be inspected
// and compared after the process that recorded them has exited.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/mantleflow/timing/pkg/timing"
)

const runPrefix = "run/"

// ErrRunNotFound is returned by Load and Delete for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// Config configures the snapshot store.
type Config struct {
	Dir string
	// InMemory skips disk persistence entirely; used by tests.
	InMemory bool
}

// DefaultConfig returns a disk-backed configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{Dir: dir}
}

// Store is a Badger-backed archive of timing snapshots keyed by run ID.
type Store struct {
	db *badger.DB
}

// Open opens or creates the archive database.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Dir).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Save stores a snapshot under its run ID, overwriting any previous snapshot
// for the same run.
func (s *Store) Save(snap timing.Snapshot) error {
	if snap.RunID == "" {
		return errors.New("snapshot has no run id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.RunID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(snap.RunID), data)
	})
}

// Load retrieves the snapshot archived under runID.
func (s *Store) Load(runID string) (timing.Snapshot, error) {
	var snap timing.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(runID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return timing.Snapshot{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	if err != nil {
		return timing.Snapshot{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	return snap, nil
}

// List returns the archived run IDs in lexical order.
func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(runPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, runPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes an archived run.
func (s *Store) Delete(runID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(runKey(runID)); err != nil {
			return err
		}
		return txn.Delete(runKey(runID))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runKey(runID string) []byte {
	return []byte(runPrefix + runID)
}
