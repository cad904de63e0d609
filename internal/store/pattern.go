package store

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/types"
)

var patternsBucket = []byte("patterns")

// Stats is PatternStore.GetStats's return shape (spec §4.6 "PatternStore
// contract").
type Stats struct {
	TotalPatterns     int                             `json:"totalPatterns"`
	ByStatus          map[types.PatternStatus]int     `json:"byStatus"`
	ByCategory        map[types.Category]int          `json:"byCategory"`
	ByConfidenceLevel map[types.ConfidenceLevel]int    `json:"byConfidenceLevel"`
	TotalLocations    int                              `json:"totalLocations"`
	TotalOutliers     int                              `json:"totalOutliers"`
	LastUpdated       time.Time                        `json:"lastUpdated"`
}

// PatternStore is the durable, content-addressed pattern table backing
// `.drift/patterns.db` (spec §3 "Pattern", §4.6).
type PatternStore struct {
	db *bbolt.DB
}

// OpenPatternStore opens (creating if necessary) the pattern store at path.
func OpenPatternStore(path string) (*PatternStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &PatternStore{db: db}
	if err := s.Initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Initialize creates the store's bucket if absent.
func (s *PatternStore) Initialize() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(patternsBucket)
		return err
	})
	if err != nil {
		return drifterrors.NewStoreError("patterns", "initialize", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *PatternStore) Close() error { return s.db.Close() }

// Add inserts or overwrites a pattern.
func (s *PatternStore) Add(p *types.Pattern) error {
	return s.put(p)
}

func (s *PatternStore) put(p *types.Pattern) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return drifterrors.NewStoreError("patterns", "marshal "+p.ID, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(patternsBucket).Put([]byte(p.ID), data)
	})
	if err != nil {
		return drifterrors.NewStoreError("patterns", "put "+p.ID, err)
	}
	return nil
}

// Update loads a pattern, applies mutate, and persists the result.
func (s *PatternStore) Update(id string, mutate func(*types.Pattern)) error {
	p, ok, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return drifterrors.NewStoreError("patterns", "update: pattern not found: "+id, nil)
	}
	mutate(p)
	return s.put(p)
}

// Approve transitions a pattern to approved. Per spec's monotonicity
// invariant this touches only Status (and the Severity it determines) —
// confidence and locations are untouched, so approving never lowers the
// confidence bucket.
func (s *PatternStore) Approve(id string) error {
	return s.Update(id, func(p *types.Pattern) {
		p.Status = types.StatusApproved
		p.Severity = types.SeverityForStatus(p.Status)
	})
}

// Ignore transitions a pattern to ignored. Locations/outliers are
// untouched (spec's "ignoring never changes locations/outliers").
func (s *PatternStore) Ignore(id string) error {
	return s.Update(id, func(p *types.Pattern) {
		p.Status = types.StatusIgnored
		p.Severity = types.SeverityForStatus(p.Status)
	})
}

// Unignore transitions an ignored pattern back to discovered (spec §4.5
// state machine: "ignored --user un-ignores--> discovered").
func (s *PatternStore) Unignore(id string) error {
	return s.Update(id, func(p *types.Pattern) {
		if p.Status == types.StatusIgnored {
			p.Status = types.StatusDiscovered
			p.Severity = types.SeverityForStatus(p.Status)
		}
	})
}

// Remove permanently deletes a pattern.
func (s *PatternStore) Remove(id string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(patternsBucket).Delete([]byte(id))
	})
	if err != nil {
		return drifterrors.NewStoreError("patterns", "remove "+id, err)
	}
	return nil
}

// Get returns the pattern with id, or ok=false if absent.
func (s *PatternStore) Get(id string) (*types.Pattern, bool, error) {
	var p *types.Pattern
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(patternsBucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var pat types.Pattern
		if err := json.Unmarshal(raw, &pat); err != nil {
			return err
		}
		p = &pat
		return nil
	})
	if err != nil {
		return nil, false, drifterrors.NewStoreError("patterns", "get "+id, err)
	}
	return p, p != nil, nil
}

// GetAll returns every stored pattern, sorted by id for deterministic
// output (spec §5 "deterministic reduction").
func (s *PatternStore) GetAll() ([]*types.Pattern, error) {
	return s.filter(func(*types.Pattern) bool { return true })
}

// GetByCategory returns every pattern in cat.
func (s *PatternStore) GetByCategory(cat types.Category) ([]*types.Pattern, error) {
	return s.filter(func(p *types.Pattern) bool { return p.Category == cat })
}

// GetByStatus returns every pattern with the given status.
func (s *PatternStore) GetByStatus(status types.PatternStatus) ([]*types.Pattern, error) {
	return s.filter(func(p *types.Pattern) bool { return p.Status == status })
}

func (s *PatternStore) filter(keep func(*types.Pattern) bool) ([]*types.Pattern, error) {
	var out []*types.Pattern
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(patternsBucket)
		return b.ForEach(func(k, v []byte) error {
			var p types.Pattern
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if keep(&p) {
				out = append(out, &p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, drifterrors.NewStoreError("patterns", "scan", err)
	}
	sortPatternsByID(out)
	return out, nil
}

func sortPatternsByID(ps []*types.Pattern) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j-1].ID > ps[j].ID; j-- {
			ps[j-1], ps[j] = ps[j], ps[j-1]
		}
	}
}

// SaveAll persists every pattern in one all-or-nothing transaction (spec
// §4.6 "Writes are transactional (all-or-nothing per saveAll)").
func (s *PatternStore) SaveAll(patterns []*types.Pattern) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(patternsBucket)
		for _, p := range patterns {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			if err := b.Put([]byte(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return drifterrors.NewStoreError("patterns", "save-all", err)
	}
	return nil
}

// GetStats computes the store's summary counts (spec §4.6 "getStats").
func (s *PatternStore) GetStats() (Stats, error) {
	all, err := s.GetAll()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		ByStatus:          make(map[types.PatternStatus]int),
		ByCategory:        make(map[types.Category]int),
		ByConfidenceLevel: make(map[types.ConfidenceLevel]int),
		LastUpdated:       time.Now(),
	}
	for _, p := range all {
		stats.TotalPatterns++
		stats.ByStatus[p.Status]++
		stats.ByCategory[p.Category]++
		stats.ByConfidenceLevel[p.Confidence.Level]++
		stats.TotalLocations += len(p.Locations)
		stats.TotalOutliers += len(p.Outliers)
		if p.LastSeen.After(stats.LastUpdated) {
			stats.LastUpdated = p.LastSeen
		}
	}
	return stats, nil
}
