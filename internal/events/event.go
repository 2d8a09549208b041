package events

import (
	"strconv"
	"time"
)

type Type string

const (
	TypeOrganizationCreated Type = "organization.created"
	TypeOrganizationUpdated Type = "organization.updated"
	TypeOrganizationDeleted Type = "organization.deleted"
	TypeUserCreated         Type = "user.created"
	TypeUserDeleted         Type = "user.deleted"
	TypeMembershipAdded     Type = "membership.added"
	TypeMembershipRemoved   Type = "membership.removed"
)

// Event describes a committed change. Zero ids are left out of the stream entry.
type Event struct {
	Type           Type
	OrganizationID int64
	UserID         int64
	MembershipID   int64
	ActorID        int64
	OccurredAt     time.Time
}

func (e Event) values() map[string]any {
	fields := map[string]any{
		"type":        string(e.Type),
		"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	put := func(name string, v int64) {
		if v != 0 {
			fields[name] = strconv.FormatInt(v, 10)
		}
	}
	put("organization_id", e.OrganizationID)
	put("user_id", e.UserID)
	put("membership_id", e.MembershipID)
	put("actor_id", e.ActorID)
	return fields
}
