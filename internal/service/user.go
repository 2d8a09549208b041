package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"basegraph.app/tenancy/common/id"
	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/store"
)

const maxLockAttempts = 3

var errLockSetChanged = errors.New("created organizations changed while locking")

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(digest, password string) (bool, error)
}

type UserService interface {
	Create(ctx context.Context, name, email, password string) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)
	Delete(ctx context.Context, actor auth.Identity, userID int64) (*model.User, error)
}

type userService struct {
	mutator
	stores  StoreProvider
	hasher  PasswordHasher
	cascade *ConsistencyCoordinator
	timeout time.Duration
}

func NewUserService(stores StoreProvider, txRunner TxRunner, locker lock.Locker, publisher events.Publisher, hasher PasswordHasher, opts Options) UserService {
	return &userService{
		mutator: mutator{txRunner: txRunner, locker: locker, publisher: publisher},
		stores:  stores,
		hasher:  hasher,
		cascade: NewConsistencyCoordinator(opts.StoreTimeout),
		timeout: opts.StoreTimeout,
	}
}

func (s *userService) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Operation: logger.Ptr("create_user")})

	name, err := validateName("name", name)
	if err != nil {
		return nil, err
	}
	email, err = validateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
	}

	cctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.stores.Users().Create(cctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrAlreadyExists)
		}
		slog.ErrorContext(ctx, "failed to create user", "error", err)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID)
	s.publish(ctx, events.Event{Type: events.TypeUserCreated, UserID: user.ID, ActorID: user.ID})
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	user, err := s.stores.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, EntityUser, userID)
	}
	return user, nil
}

// Delete removes a user and everything that depends on it. Only the user
// itself may do this.
func (s *userService) Delete(ctx context.Context, actor auth.Identity, userID int64) (*model.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ActorID:   logger.Ptr(actor.UserID),
		UserID:    logger.Ptr(userID),
		Operation: logger.Ptr("delete_user"),
	})

	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if actor.UserID != userID {
		return nil, fmt.Errorf("user %d deleting user %d: %w", actor.UserID, userID, ErrPermissionDenied)
	}

	for attempt := 1; ; attempt++ {
		user, deleted, err := s.deleteOnce(ctx, userID)
		if errors.Is(err, errLockSetChanged) && attempt < maxLockAttempts {
			slog.DebugContext(ctx, "created organizations changed, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			var cascadeErr *CascadeError
			if errors.As(err, &cascadeErr) {
				slog.ErrorContext(ctx, "user delete rolled back", "error", err, "step", cascadeErr.Step)
			}
			return nil, err
		}

		evs := make([]events.Event, 0, len(deleted)+1)
		for _, org := range deleted {
			evs = append(evs, events.Event{Type: events.TypeOrganizationDeleted, OrganizationID: org.ID, ActorID: actor.UserID})
		}
		evs = append(evs, events.Event{Type: events.TypeUserDeleted, UserID: userID, ActorID: actor.UserID})

		slog.InfoContext(ctx, "user deleted", "organizations_removed", len(deleted))
		s.publish(ctx, evs...)
		return user, nil
	}
}

// deleteOnce locks the user and every organization it created, then runs the
// cascade. If the created set moved between reading it and locking, it
// returns errLockSetChanged without touching anything.
func (s *userService) deleteOnce(ctx context.Context, userID int64) (*model.User, []model.Organization, error) {
	planned, err := s.createdOrgIDs(ctx, s.stores, userID)
	if err != nil {
		return nil, nil, err
	}

	keys := make([]string, 0, len(planned)+1)
	keys = append(keys, lock.UserKey(userID))
	for _, orgID := range planned {
		keys = append(keys, lock.OrgKey(orgID))
	}

	var (
		snapshot *model.User
		deleted  []model.Organization
	)
	err = s.inTx(ctx, keys, func(stores StoreProvider) error {
		cctx, cancel := bounded(ctx, s.timeout)
		user, err := stores.Users().GetByID(cctx, userID)
		cancel()
		if err != nil {
			return lookupErr(err, EntityUser, userID)
		}

		current, err := s.createdOrgIDs(ctx, stores, userID)
		if err != nil {
			return err
		}
		if !slices.Equal(planned, current) {
			return errLockSetChanged
		}

		deleted, err = s.cascade.DeleteUser(ctx, stores, user)
		if err != nil {
			return err
		}
		snapshot = user
		return nil
	})
	return snapshot, deleted, err
}

func (s *userService) createdOrgIDs(ctx context.Context, stores StoreProvider, userID int64) ([]int64, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	orgs, err := stores.Organizations().ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing created organizations: %w", err)
	}
	ids := make([]int64, len(orgs))
	for i, o := range orgs {
		ids[i] = o.ID
	}
	return ids, nil
}
