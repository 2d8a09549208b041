package service_test

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	. "github.com/onsi/gomega"

	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/service"
	"basegraph.app/tenancy/internal/store"
	"basegraph.app/tenancy/internal/store/memory"
)

type mockMembershipStore struct {
	store.MembershipStore
	getByOrgAndUserFn      func(ctx context.Context, orgID, userID int64) (*model.Membership, error)
	listAdminsFn           func(ctx context.Context, orgID int64) ([]model.Membership, error)
	deleteByOrganizationFn func(ctx context.Context, orgID int64) (int64, error)
	deleteByUserFn         func(ctx context.Context, userID int64) (int64, error)
	getByOrgAndUserCalls   int
}

func (m *mockMembershipStore) GetByOrgAndUser(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	m.getByOrgAndUserCalls++
	if m.getByOrgAndUserFn != nil {
		return m.getByOrgAndUserFn(ctx, orgID, userID)
	}
	return m.MembershipStore.GetByOrgAndUser(ctx, orgID, userID)
}

func (m *mockMembershipStore) ListAdminsByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error) {
	if m.listAdminsFn != nil {
		return m.listAdminsFn(ctx, orgID)
	}
	return m.MembershipStore.ListAdminsByOrganization(ctx, orgID)
}

func (m *mockMembershipStore) DeleteByOrganization(ctx context.Context, orgID int64) (int64, error) {
	if m.deleteByOrganizationFn != nil {
		return m.deleteByOrganizationFn(ctx, orgID)
	}
	return m.MembershipStore.DeleteByOrganization(ctx, orgID)
}

func (m *mockMembershipStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return m.MembershipStore.DeleteByUser(ctx, userID)
}

type mockUserStore struct {
	store.UserStore
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
	deleteFn  func(ctx context.Context, id int64) error
	mu        sync.Mutex
	getCalls  int
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return m.UserStore.GetByID(ctx, id)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return m.UserStore.Delete(ctx, id)
}

type mockOrganizationStore struct {
	store.OrganizationStore
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return m.OrganizationStore.Delete(ctx, id)
}

// mockStoreProvider wraps a real provider; non-nil mocks replace the
// matching store and fall through to it for everything they do not override.
type mockStoreProvider struct {
	base  store.Provider
	users *mockUserStore
	orgs  *mockOrganizationStore
	mems  *mockMembershipStore
}

// bind points every mock at base before use.
func (p *mockStoreProvider) bind(base store.Provider) *mockStoreProvider {
	p.base = base
	if p.users != nil {
		p.users.UserStore = base.Users()
	}
	if p.orgs != nil {
		p.orgs.OrganizationStore = base.Organizations()
	}
	if p.mems != nil {
		p.mems.MembershipStore = base.Memberships()
	}
	return p
}

func (p *mockStoreProvider) Users() store.UserStore {
	if p.users != nil {
		return p.users
	}
	return p.base.Users()
}

func (p *mockStoreProvider) Organizations() store.OrganizationStore {
	if p.orgs != nil {
		return p.orgs
	}
	return p.base.Organizations()
}

func (p *mockStoreProvider) Memberships() store.MembershipStore {
	if p.mems != nil {
		return p.mems
	}
	return p.base.Memberships()
}

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
	calls    int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	return m.withTxFn(ctx, fn)
}

type recordingLocker struct {
	inner lock.Locker
	mu    sync.Mutex
	keys  [][]string
}

func (l *recordingLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	l.mu.Lock()
	l.keys = append(l.keys, keys)
	l.mu.Unlock()
	return l.inner.Acquire(ctx, keys...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evs ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evs...)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// env wires the real use cases to the in-memory backend. Tests may swap
// txRunner.withTxFn to inject faults inside transactions.
type env struct {
	mem       *memory.Store
	txRunner  *mockTxRunner
	locker    *recordingLocker
	publisher *recordingPublisher
	tokens    *auth.TokenService
	services  *service.Services
	ctx       context.Context
}

func newEnv() *env {
	mem := memory.New()
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	Expect(err).NotTo(HaveOccurred())
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	Expect(err).NotTo(HaveOccurred())

	e := &env{
		mem: mem,
		txRunner: &mockTxRunner{withTxFn: func(ctx context.Context, fn func(service.StoreProvider) error) error {
			return mem.WithTx(ctx, fn)
		}},
		locker:    &recordingLocker{inner: lock.NewLocal(time.Second)},
		publisher: &recordingPublisher{},
		tokens:    tokens,
		ctx:       context.Background(),
	}
	e.services = service.NewServices(mem, e.txRunner, e.locker, e.publisher, hasher, tokens, service.Options{
		StoreTimeout:      time.Second,
		RosterConcurrency: 4,
	})
	return e
}

// faultInTx makes every later transaction see the given store overrides.
func (e *env) faultInTx(p *mockStoreProvider) {
	e.txRunner.withTxFn = func(ctx context.Context, fn func(service.StoreProvider) error) error {
		return e.mem.WithTx(ctx, func(tx store.Provider) error {
			return fn(p.bind(tx))
		})
	}
}

func (e *env) signup(name, email string) *model.User {
	u, err := e.services.Users().Create(e.ctx, name, email, "password123")
	Expect(err).NotTo(HaveOccurred())
	return u
}

func (e *env) createOrg(creator *model.User, name string, tiers ...string) *model.Organization {
	if len(tiers) == 0 {
		tiers = []string{"free", "pro"}
	}
	o, err := e.services.Organizations().Create(e.ctx, identityOf(creator), name, tiers)
	Expect(err).NotTo(HaveOccurred())
	return o
}

func (e *env) join(org *model.Organization, actor, member *model.User, isAdmin bool) *model.Membership {
	m, err := e.services.Memberships().Add(e.ctx, identityOf(actor), org.ID, service.AddMembershipInput{
		UserID:  member.ID,
		IsAdmin: isAdmin,
	})
	Expect(err).NotTo(HaveOccurred())
	return m
}

func identityOf(u *model.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email}
}
