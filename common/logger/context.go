package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and services enrich the context once; every slog call made with that context
// then carries the same organization/user/actor attributes.
type LogFields struct {
	OrganizationID *int64  // Target organization
	UserID         *int64  // Target user
	MembershipID   *int64  // Target membership
	ActorID        *int64  // Caller resolved from the bearer token
	Operation      *string // Use case name (e.g., "delete_organization")
	Component      string  // Component name (e.g., "tenancy.service.cascade")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.MembershipID != nil {
		result.MembershipID = next.MembershipID
	}
	if next.ActorID != nil {
		result.ActorID = next.ActorID
	}
	if next.Operation != nil {
		result.Operation = next.Operation
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

func (f LogFields) attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 6)
	for _, id := range []struct {
		key string
		val *int64
	}{
		{"organization_id", f.OrganizationID},
		{"user_id", f.UserID},
		{"membership_id", f.MembershipID},
		{"actor_id", f.ActorID},
	} {
		if id.val != nil {
			attrs = append(attrs, slog.Int64(id.key, *id.val))
		}
	}
	if f.Operation != nil {
		attrs = append(attrs, slog.String("operation", *f.Operation))
	}
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ActorID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
