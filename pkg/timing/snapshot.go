package timing

import (
	"sort"
	"time"
)

// Snapshot is an immutable copy of a recorder's aggregated data, suitable
// for archiving and later rendering. Entries are ordered by name, file and
// line so snapshots of the same data compare equal.
type Snapshot struct {
	RunID   string          `json:"run_id"`
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Entries []SnapshotEntry `json:"entries"`
}

// SnapshotEntry is one flattened hit-table record.
type SnapshotEntry struct {
	Name  string  `json:"name"`
	File  string  `json:"file"`
	Line  int     `json:"line"`
	Count int     `json:"count"`
	Total float64 `json:"total_seconds"`
}

// Snapshot captures the recorder's current aggregated data under a run
// identifier. The recorder itself is left untouched.
func (r *Recorder) Snapshot(runID string) Snapshot {
	snap := Snapshot{
		RunID:   runID,
		Start:   r.startTime,
		End:     r.endTime,
		Entries: make([]SnapshotEntry, 0, len(r.hits)),
	}
	for key, rec := range r.hits {
		snap.Entries = append(snap.Entries, SnapshotEntry{
			Name:  key.Name,
			File:  key.File,
			Line:  key.Line,
			Count: rec.Count,
			Total: rec.Total,
		})
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		a, b := snap.Entries[i], snap.Entries[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return snap
}

// Runtime returns the wall-clock span the snapshot covers.
func (s Snapshot) Runtime() time.Duration {
	if s.Start.IsZero() || s.End.IsZero() {
		return 0
	}
	return s.End.Sub(s.Start)
}

func (s Snapshot) table() hitTable {
	hits := make(hitTable, len(s.Entries))
	for _, e := range s.Entries {
		hits[HitKey{Name: e.Name, File: e.File, Line: e.Line}] = HitRecord{
			Count: e.Count,
			Total: e.Total,
		}
	}
	return hits
}

// GroupSnapshot regroups an archived snapshot the way Recorder.GetData
// regroups live data.
func GroupSnapshot(snap Snapshot, groupBy string) (map[string]HitRecord, error) {
	keyfn, err := groupKeyFunc(groupBy)
	if err != nil {
		return nil, err
	}
	return groupHits(snap.table(), keyfn), nil
}

// PrintSnapshotTable renders an archived snapshot with the same grouping,
// sorting and cutoff rules as Recorder.PrintTable. Unlike the live path it
// is not rank-gated: archived data can be inspected from any process.
func PrintSnapshotTable(snap Snapshot, opts TableOptions) error {
	keyfn, err := groupKeyFunc(opts.GroupBy)
	if err != nil {
		return err
	}
	return renderTable(groupHits(snap.table(), keyfn), snap.Runtime(), opts)
}
