package common

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyLabel = errors.New("label cannot be empty")
	whitespace    = regexp.MustCompile(`\s+`)
)

// NormalizeEmail lowercases and trims an email address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeLabel trims a display label and collapses inner whitespace runs.
func NormalizeLabel(input string) (string, error) {
	label := whitespace.ReplaceAllString(strings.TrimSpace(input), " ")
	if label == "" {
		return "", ErrEmptyLabel
	}
	return label, nil
}

// NormalizeLabels applies NormalizeLabel to every element, keeping order.
func NormalizeLabels(inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		label, err := NormalizeLabel(in)
		if err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, nil
}
