package store

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

// State holds the entire process-local dataset: the read-only catalog,
// per-user carts, the order history, the coupon registry, and the
// global order counter. Nothing here is ever persisted.
type State struct {
	Catalog    map[string]model.Product
	CatalogIDs []string // catalog listing order, fixed at seed time
	Users      map[string]*model.User
	Coupons    []*model.Coupon
	Orders     []*model.Order
	OrderCount int64
}

// Store is the single synchronization boundary for all shared state.
// Every mutation happens under its write lock; multi-step operations
// (checkout, admin issuance) pin the lock for their whole duration via
// Begin/Commit so no other request can observe a half-applied update.
type Store struct {
	mu    sync.RWMutex
	state State
}

// New creates a Store seeded with the given catalog.
func New(catalog []model.Product) *Store {
	s := &Store{}
	s.seed(catalog)
	return s
}

func (s *Store) seed(catalog []model.Product) {
	s.state = State{
		Catalog:    make(map[string]model.Product, len(catalog)),
		CatalogIDs: make([]string, 0, len(catalog)),
		Users:      make(map[string]*model.User),
		Coupons:    []*model.Coupon{},
		Orders:     []*model.Order{},
	}
	for _, p := range catalog {
		if _, ok := s.state.Catalog[p.ID]; ok {
			log.Warn().Str("product_id", p.ID).Msg("duplicate product in catalog seed, keeping first")
			continue
		}
		s.state.Catalog[p.ID] = p
		s.state.CatalogIDs = append(s.state.CatalogIDs, p.ID)
	}
}

// Reset reinitializes all collections to the given seed catalog.
// It exists for the test harness; production code never calls it.
func (s *Store) Reset(catalog []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed(catalog)
}

// Read runs fn under the read lock. fn must not mutate the state and
// must not retain references to it after returning; copy what you need.
func (s *Store) Read(fn func(*State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Begin acquires the write lock and returns a Tx scoped to it.
// The caller must finish with Commit or Rollback (defer Rollback is
// safe after Commit, mirroring the usual database transaction shape).
//
// Mutations apply to the live state immediately; Rollback releases the
// lock but does not undo them. Callers therefore run every validation
// before the first mutation, keeping failed operations side-effect free.
func (s *Store) Begin() *Tx {
	s.mu.Lock()
	return &Tx{store: s, state: &s.state}
}

// Tx pins the store's write lock for a multi-step operation.
type Tx struct {
	store *Store
	state *State
	done  bool
}

// State returns the live state guarded by this transaction.
func (tx *Tx) State() *State {
	return tx.state
}

// Commit releases the lock.
func (tx *Tx) Commit() {
	if tx.done {
		return
	}
	tx.done = true
	tx.store.mu.Unlock()
}

// Rollback releases the lock. No-op if already committed.
func (tx *Tx) Rollback() {
	tx.Commit()
}
