// Package store persists Drift's patterns, constraints, and contracts in
// `.drift/*.db` (spec §6 "Filesystem layout"), each an embedded,
// transactional, single-writer/many-reader bbolt database — a natural fit
// for spec §5's per-store RW-lock discipline, since bbolt's own MVCC
// already serializes writers and lets readers see a consistent snapshot
// without Drift hand-rolling that guarantee.
package store

import (
	"time"

	"go.etcd.io/bbolt"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
)

func openDB(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, drifterrors.NewStoreError(path, "open database", err).
			WithHint("another drift process may be holding the store open")
	}
	return db, nil
}
