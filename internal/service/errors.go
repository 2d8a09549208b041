package service

import (
	"errors"
	"fmt"

	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/store"
)

var (
	ErrUnauthenticated = auth.ErrUnauthenticated
	ErrInvalidToken    = auth.ErrInvalidToken
	ErrExpiredToken    = auth.ErrExpiredToken

	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound and ErrPasswordMismatch both match ErrInvalidCredentials.
	// Callers facing the outside world should only ever report that.
	ErrUserNotFound     error = &loginError{msg: "login failed: user not found", kinds: []error{ErrNotFound, ErrInvalidCredentials}}
	ErrPasswordMismatch error = &loginError{msg: "login failed: wrong password", kinds: []error{ErrInvalidCredentials}}
)

type loginError struct {
	msg   string
	kinds []error
}

func (e *loginError) Error() string   { return e.msg }
func (e *loginError) Unwrap() []error { return e.kinds }

type Entity string

const (
	EntityUser         Entity = "user"
	EntityOrganization Entity = "organization"
	EntityMembership   Entity = "membership"
)

type NotFoundError struct {
	Entity Entity
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Step names one stage of a deletion cascade.
type Step string

const (
	StepRemoveFromCreator     Step = "remove_from_creator"
	StepDeleteOrgMemberships  Step = "delete_organization_memberships"
	StepDeleteOrganization    Step = "delete_organization"
	StepDeleteCreatedOrgs     Step = "delete_created_organizations"
	StepDeleteUserMemberships Step = "delete_user_memberships"
	StepDeleteUser            Step = "delete_user"
)

// CascadeError reports the cascade stage that failed. The surrounding
// transaction has been rolled back by the time a caller sees it.
type CascadeError struct {
	Step   Step
	Entity Entity
	ID     int64
	Err    error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade step %s on %s %d: %v", e.Step, e.Entity, e.ID, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// lookupErr turns a store miss into a typed NotFoundError and wraps anything else.
func lookupErr(err error, entity Entity, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("loading %s %d: %w", entity, id, err)
}
