package userrecord

import (
	"fmt"
	"strings"
)

// MatchMode selects how the email field is compared against a query.
type MatchMode int

const (
	// MatchFaithful lowercases the query and both name fields but compares
	// the email as received. "Bob@x.com" never matches "bob".
	MatchFaithful MatchMode = iota
	// MatchNormalized lowercases the email too.
	MatchNormalized
)

// ParseMatchMode maps a configuration value to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "faithful":
		return MatchFaithful, nil
	case "normalized":
		return MatchNormalized, nil
	default:
		return MatchFaithful, fmt.Errorf("unknown email match mode %q", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchNormalized {
		return "normalized"
	}
	return "faithful"
}

// Filter returns the records of full whose first name, last name or email
// contains query, keeping their original order. An empty query returns every
// record. The result is never nil and never aliases full.
func Filter(full []UserRecord, query string, mode MatchMode) []UserRecord {
	q := strings.ToLower(query)
	visible := make([]UserRecord, 0, len(full))
	for _, u := range full {
		if contains(u, q, mode) {
			visible = append(visible, u)
		}
	}
	return visible
}

// contains expects q to be lowercased already.
func contains(u UserRecord, q string, mode MatchMode) bool {
	email := u.Email
	if mode == MatchNormalized {
		email = strings.ToLower(email)
	}

	return strings.Contains(strings.ToLower(u.Name.First), q) ||
		strings.Contains(strings.ToLower(u.Name.Last), q) ||
		strings.Contains(email, q)
}
