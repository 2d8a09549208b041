package service

import (
	"time"

	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
)

// Options tunes the use cases.
type Options struct {
	// StoreTimeout bounds each store call. Zero disables the bound.
	StoreTimeout      time.Duration
	RosterConcurrency int
}

type Services struct {
	stores    StoreProvider
	txRunner  TxRunner
	locker    lock.Locker
	publisher events.Publisher
	hasher    PasswordHasher
	tokens    TokenIssuer
	opts      Options
}

func NewServices(
	stores StoreProvider,
	txRunner TxRunner,
	locker lock.Locker,
	publisher events.Publisher,
	hasher PasswordHasher,
	tokens TokenIssuer,
	opts Options,
) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		locker:    locker,
		publisher: publisher,
		hasher:    hasher,
		tokens:    tokens,
		opts:      opts,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores, s.txRunner, s.locker, s.publisher, s.hasher, s.opts)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores, s.txRunner, s.locker, s.publisher, s.opts)
}

func (s *Services) Memberships() MembershipService {
	return NewMembershipService(s.stores, s.txRunner, s.locker, s.publisher, s.opts)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.hasher, s.tokens, s.opts)
}
