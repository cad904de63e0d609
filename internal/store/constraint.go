package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/types"
)

var constraintsBucket = []byte("constraints")

// ConstraintStore persists synthesized constraints in `.drift/constraints.db`
// (spec §3 "Constraint", §4.6).
type ConstraintStore struct {
	db *bbolt.DB
}

// OpenConstraintStore opens (creating if necessary) the constraint store.
func OpenConstraintStore(path string) (*ConstraintStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &ConstraintStore{db: db}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(constraintsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, drifterrors.NewStoreError("constraints", "initialize", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *ConstraintStore) Close() error { return s.db.Close() }

// Add inserts or overwrites a constraint.
func (s *ConstraintStore) Add(c *types.Constraint) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return drifterrors.NewStoreError("constraints", "marshal "+c.ID, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(constraintsBucket).Put([]byte(c.ID), data)
	})
	if err != nil {
		return drifterrors.NewStoreError("constraints", "put "+c.ID, err)
	}
	return nil
}

// Invalidate marks a constraint invalidated without deleting it, so a gate
// can explain why a once-applicable rule no longer fires.
func (s *ConstraintStore) Invalidate(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(constraintsBucket)
		raw := b.Get([]byte(id))
		if raw == nil {
			return drifterrors.NewStoreError("constraints", "invalidate: not found: "+id, nil)
		}
		var c types.Constraint
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		c.Invalidated = true
		data, err := json.MarshalIndent(&c, "", "  ")
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
}

// GetAll returns every constraint, sorted by id.
func (s *ConstraintStore) GetAll() ([]*types.Constraint, error) {
	var out []*types.Constraint
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(constraintsBucket).ForEach(func(k, v []byte) error {
			var c types.Constraint
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			out = append(out, &c)
			return nil
		})
	})
	if err != nil {
		return nil, drifterrors.NewStoreError("constraints", "scan", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByCategory returns every non-invalidated constraint in cat.
func (s *ConstraintStore) GetByCategory(cat types.Category) ([]*types.Constraint, error) {
	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	var out []*types.Constraint
	for _, c := range all {
		if c.Category == cat && !c.Invalidated {
			out = append(out, c)
		}
	}
	return out, nil
}

// Synthesize derives constraints from approved patterns (spec §4.6
// "Constraint synthesis: one or more approved patterns -> a machine
// checkable rule"). Per SPEC_FULL §14's resolved open question, ignored
// patterns never contribute — only status==approved patterns are read.
// One constraint is synthesized per (category, subcategory) group, so
// approved patterns in the same category but different subcategories never
// get collapsed into a single over-broad rule; patterns sharing both are.
func Synthesize(patterns []*types.Pattern, minConfidence float64) []*types.Constraint {
	type key struct {
		category    types.Category
		subcategory string
	}
	groups := make(map[key][]*types.Pattern)
	for _, p := range patterns {
		if p.Status != types.StatusApproved {
			continue
		}
		if p.Confidence.Score < minConfidence {
			continue
		}
		k := key{p.Category, p.Subcategory}
		groups[k] = append(groups[k], p)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].subcategory < keys[j].subcategory
	})

	var constraints []*types.Constraint
	for _, k := range keys {
		ps := groups[k]
		sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })

		var ids []string
		var min float64 = 1
		for _, p := range ps {
			ids = append(ids, p.ID)
			if p.Confidence.Score < min {
				min = p.Confidence.Score
			}
		}

		constraints = append(constraints, &types.Constraint{
			ID:             fmt.Sprintf("constraint.%s.%s", k.category, k.subcategory),
			Category:       k.category,
			RuleText:       fmt.Sprintf("new code in %q/%q must match the approved pattern(s): %v", k.category, k.subcategory, ids),
			Description:    fmt.Sprintf("Synthesized from %d approved pattern(s) in %s/%s.", len(ps), k.category, k.subcategory),
			MinConfidence:  min,
			SourcePatterns: ids,
			Invalidated:    false,
		})
	}
	return constraints
}
