// Package memory is an in-process store backend with the same semantics as the
// Postgres stores, including uniqueness, reference checks and atomic transactions.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

type state struct {
	users       map[int64]*model.User
	orgs        map[int64]*model.Organization
	memberships map[int64]*model.Membership
}

func newState() *state {
	return &state{
		users:       make(map[int64]*model.User),
		orgs:        make(map[int64]*model.Organization),
		memberships: make(map[int64]*model.Membership),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:       make(map[int64]*model.User, len(s.users)),
		orgs:        make(map[int64]*model.Organization, len(s.orgs)),
		memberships: make(map[int64]*model.Membership, len(s.memberships)),
	}
	for id, u := range s.users {
		c.users[id] = u.Clone()
	}
	for id, o := range s.orgs {
		c.orgs[id] = o.Clone()
	}
	for id, m := range s.memberships {
		mc := *m
		c.memberships[id] = &mc
	}
	return c
}

// access runs fn against a state. Outside a transaction it locks the shared
// state; inside one it hands out the transaction's private copy.
type access interface {
	read(ctx context.Context, fn func(*state) error) error
	write(ctx context.Context, fn func(*state) error) error
}

// Store keeps every entity in memory. Writers are serialized; a transaction
// works on a private copy that replaces the shared state only on commit.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
	now     func() time.Time
}

func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.snapshot()
	if err := fn(next); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = next
	s.mu.Unlock()
	return nil
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.clone()
}

func (s *Store) Users() store.UserStore {
	return &userStore{a: s, now: s.now}
}

func (s *Store) Organizations() store.OrganizationStore {
	return &organizationStore{a: s, now: s.now}
}

func (s *Store) Memberships() store.MembershipStore {
	return &membershipStore{a: s, now: s.now}
}

// WithTx runs fn against a private copy of the state. The copy replaces the
// shared state only when fn returns nil and ctx is still live.
// Stores obtained from s itself must not be used inside fn.
func (s *Store) WithTx(ctx context.Context, fn func(store.Provider) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx := &txState{st: s.snapshot()}
	if err := fn(&txProvider{tx: tx, now: s.now}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = tx.st
	s.mu.Unlock()
	return nil
}

type txState struct {
	st *state
}

func (t *txState) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

// write applies fn to a scratch copy so a failed statement leaves the
// transaction as it was, like a statement-level rollback.
func (t *txState) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := t.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	t.st = next
	return nil
}

type txProvider struct {
	tx  *txState
	now func() time.Time
}

func (p *txProvider) Users() store.UserStore {
	return &userStore{a: p.tx, now: p.now}
}

func (p *txProvider) Organizations() store.OrganizationStore {
	return &organizationStore{a: p.tx, now: p.now}
}

func (p *txProvider) Memberships() store.MembershipStore {
	return &membershipStore{a: p.tx, now: p.now}
}

func sortedByID[T any](items map[int64]*T, keep func(*T) bool, copyOut func(*T) T) []T {
	ids := slices.Sorted(maps.Keys(items))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		item := items[id]
		if keep(item) {
			out = append(out, copyOut(item))
		}
	}
	return out
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}
