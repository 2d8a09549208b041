package service

import (
	"fmt"
	"net/mail"
	"unicode/utf8"

	"basegraph.app/tenancy/common"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/model"
)

const (
	maxNameLength     = 255
	minPasswordLength = 8
)

func validateName(field, raw string) (string, error) {
	name, err := common.NormalizeLabel(raw)
	if err != nil {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	return name, nil
}

func validateTiers(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{Field: "tiers", Reason: "must contain at least one tier"}
	}
	tiers, err := common.NormalizeLabels(raw)
	if err != nil {
		return nil, &ValidationError{Field: "tiers", Reason: "must not contain empty labels"}
	}
	for _, t := range tiers {
		if utf8.RuneCountInString(t) > maxNameLength {
			return nil, &ValidationError{Field: "tiers", Reason: fmt.Sprintf("labels must be at most %d characters", maxNameLength)}
		}
	}
	return tiers, nil
}

func validateEmail(raw string) (string, error) {
	email := common.NormalizeEmail(raw)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	return email, nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	if len(password) > auth.MaxPasswordBytes {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes)}
	}
	return nil
}

func validateTierIndex(org *model.Organization, index int) error {
	if !org.HasTier(index) {
		return &ValidationError{Field: "tier_index", Reason: fmt.Sprintf("%d is not a tier of this organization", index)}
	}
	return nil
}
