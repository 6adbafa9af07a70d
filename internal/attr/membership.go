package attr

import (
	"fmt"
	"strings"

	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

const (
	ownerSeparator = "  "
	nameSeparator  = ","
	ownerPrefixEnd = ": "
)

// FlattenMembership renders m as "owner: name,name2  owner2: name3".
// Owners without collections are omitted. Owners and names that would read
// back differently are a validation error.
func FlattenMembership(m domain.Membership) (string, error) {
	var parts []string
	for _, owner := range m.Owners() {
		names := m.Names(owner)
		if len(names) == 0 {
			continue
		}
		if err := checkFlat("collection owner", owner, ownerPrefixEnd, ownerSeparator); err != nil {
			return "", err
		}
		for _, name := range names {
			if err := checkFlat("collection name", name, nameSeparator, ownerSeparator); err != nil {
				return "", err
			}
		}
		parts = append(parts, owner+ownerPrefixEnd+strings.Join(names, nameSeparator))
	}
	return strings.Join(parts, ownerSeparator), nil
}

// checkFlat rejects s when it holds a separator or has surrounding
// whitespace, which ParseMembership would split or trim away.
func checkFlat(kind, s string, separators ...string) error {
	if strings.TrimSpace(s) != s {
		return errors.Validationf("%s %q must not start or end with whitespace", kind, s)
	}
	for _, sep := range separators {
		if strings.Contains(s, sep) {
			return errors.Validationf("%s %q must not contain %q", kind, s, sep)
		}
	}
	return nil
}

// ParseMembership reverses FlattenMembership. An empty string is an empty
// membership. A repeated owner replaces its earlier names.
func ParseMembership(s string) (domain.Membership, error) {
	var m domain.Membership
	for _, pair := range strings.Split(s, ownerSeparator) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		owner, names, ok := strings.Cut(pair, ownerPrefixEnd)
		if !ok {
			return domain.Membership{}, fmt.Errorf("owner entry %q has no %q separator", pair, ownerPrefixEnd)
		}

		var list []string
		if strings.Contains(names, nameSeparator) {
			list = strings.Split(names, nameSeparator)
		} else {
			list = []string{names}
		}

		if err := m.Set(owner, list); err != nil {
			return domain.Membership{}, err
		}
	}
	return m, nil
}
