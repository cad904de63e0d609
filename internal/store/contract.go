package store

import (
	"encoding/json"
	"sort"

	"go.etcd.io/bbolt"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
	"github.com/ruizrica/drift-sub012/internal/types"
)

var contractsBucket = []byte("contracts")

// ContractStore persists BE<->FE API contracts in `.drift/contracts.db`
// (spec §3 "Contract", §4.6).
type ContractStore struct {
	db *bbolt.DB
}

// OpenContractStore opens (creating if necessary) the contract store.
func OpenContractStore(path string) (*ContractStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &ContractStore{db: db}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(contractsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, drifterrors.NewStoreError("contracts", "initialize", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *ContractStore) Close() error { return s.db.Close() }

// Add inserts or overwrites a contract.
func (s *ContractStore) Add(c *types.Contract) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return drifterrors.NewStoreError("contracts", "marshal "+c.ID, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(contractsBucket).Put([]byte(c.ID), data)
	})
	if err != nil {
		return drifterrors.NewStoreError("contracts", "put "+c.ID, err)
	}
	return nil
}

// GetAll returns every contract, sorted by id.
func (s *ContractStore) GetAll() ([]*types.Contract, error) {
	var out []*types.Contract
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(contractsBucket).ForEach(func(k, v []byte) error {
			var c types.Contract
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			out = append(out, &c)
			return nil
		})
	})
	if err != nil {
		return nil, drifterrors.NewStoreError("contracts", "scan", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetBroken returns every contract currently in broken status.
func (s *ContractStore) GetBroken() ([]*types.Contract, error) {
	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	var out []*types.Contract
	for _, c := range all {
		if c.Status == types.ContractStatusBroken {
			out = append(out, c)
		}
	}
	return out, nil
}

// EndpointObservation is one discovered backend or frontend half of a
// contract, produced by a detector walking route/handler declarations
// (backend) or HTTP-client call sites (frontend).
type EndpointObservation struct {
	Method         string
	NormalizedPath string
	Backend        *types.BackendEndpoint
	Frontend       *types.FrontendCall
	ExpectedFields []string
}

// Reconcile joins backend and frontend observations on (method,
// normalizedPath) and computes field mismatches between the backend's
// observed response shape and each frontend call's expected shape (spec
// §3 "Contract" verification). A contract with no frontend callers yet is
// still recorded (pending); one with mismatches is marked broken.
func Reconcile(observations []EndpointObservation) []*types.Contract {
	type key struct {
		method string
		path   string
	}
	byKey := make(map[key]*types.Contract)
	order := []key{}

	for _, obs := range observations {
		k := key{obs.Method, obs.NormalizedPath}
		c, ok := byKey[k]
		if !ok {
			c = &types.Contract{
				ID:             obs.Method + " " + obs.NormalizedPath,
				Method:         obs.Method,
				NormalizedPath: obs.NormalizedPath,
				Status:         types.ContractStatusPending,
			}
			byKey[k] = c
			order = append(order, k)
		}
		if obs.Backend != nil {
			c.Backend = *obs.Backend
		}
		if obs.Frontend != nil {
			c.Frontend = append(c.Frontend, *obs.Frontend)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].method != order[j].method {
			return order[i].method < order[j].method
		}
		return order[i].path < order[j].path
	})

	contracts := make([]*types.Contract, 0, len(order))
	for _, k := range order {
		c := byKey[k]
		c.Mismatches = computeMismatches(c)
		switch {
		case len(c.Frontend) == 0:
			c.Status = types.ContractStatusPending
		case len(c.Mismatches) > 0:
			c.Status = types.ContractStatusBroken
		default:
			c.Status = types.ContractStatusVerified
		}
		c.Confidence = contractConfidence(c)
		contracts = append(contracts, c)
	}
	return contracts
}

func computeMismatches(c *types.Contract) []types.FieldMismatch {
	if len(c.Frontend) == 0 {
		return nil
	}
	backendFields := make(map[string]bool, len(c.Backend.ResponseFields))
	for _, f := range c.Backend.ResponseFields {
		backendFields[f] = true
	}

	var mismatches []types.FieldMismatch
	seen := make(map[string]bool)
	for _, f := range c.Backend.ResponseFields {
		if !seen[f] {
			seen[f] = true
		}
	}
	// Backend fields the frontend never references aren't mismatches by
	// themselves (extra data is harmless); only missing-in-backend counts.
	for _, fe := range c.Frontend {
		if fe.ExpectedResponseTy == "" {
			continue
		}
		if !backendFields[fe.ExpectedResponseTy] {
			mismatches = append(mismatches, types.FieldMismatch{
				FieldPath: fe.ExpectedResponseTy,
				Kind:      types.MismatchMissingInBackend,
				Severity:  types.SeverityError,
			})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].FieldPath < mismatches[j].FieldPath })
	return mismatches
}

func contractConfidence(c *types.Contract) float64 {
	if c.Backend.File == "" {
		return 0
	}
	if len(c.Frontend) == 0 {
		return 0.5
	}
	if len(c.Mismatches) > 0 {
		return 0.6
	}
	return 0.9
}
