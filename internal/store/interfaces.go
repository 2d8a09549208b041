package store

import (
	"context"
	"errors"

	"basegraph.app/tenancy/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
	// ErrReferenced is returned when a write would leave or create a dangling reference
	ErrReferenced = errors.New("referenced entity missing or still in use")
)

// Provider hands out stores bound to one unit of work (a pool or a transaction).
type Provider interface {
	Users() UserStore
	Organizations() OrganizationStore
	Memberships() MembershipStore
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	AddCreatedOrganization(ctx context.Context, userID, orgID int64) error
	RemoveCreatedOrganization(ctx context.Context, userID, orgID int64) error
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error
}

// MembershipStore defines the contract for membership data access
type MembershipStore interface {
	GetByID(ctx context.Context, id int64) (*model.Membership, error)
	GetByOrgAndUser(ctx context.Context, orgID, userID int64) (*model.Membership, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error)
	ListAdminsByOrganization(ctx context.Context, orgID int64) ([]model.Membership, error)
	Create(ctx context.Context, m *model.Membership) error
	Delete(ctx context.Context, id int64) error
	DeleteByOrganization(ctx context.Context, orgID int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
