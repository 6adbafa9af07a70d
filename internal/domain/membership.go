package domain

import (
	"slices"

	"github.com/listenupapp/bookwarm/internal/errors"
)

// Membership records which collections a book appears in, per owner.
// Owners keep the order in which they were first added and each owner's
// collection names keep their insertion order. The zero value is empty and
// ready to use.
type Membership struct {
	owners []string
	names  map[string][]string
}

// Add appends name to owner's collection list. Both must be non-empty.
func (m *Membership) Add(owner, name string) error {
	if owner == "" {
		return errors.Validation("collection owner must not be empty")
	}
	if name == "" {
		return errors.Validation("collection name must not be empty")
	}
	m.ensure(owner)
	m.names[owner] = append(m.names[owner], name)
	return nil
}

// Set replaces owner's collection list.
func (m *Membership) Set(owner string, names []string) error {
	if owner == "" {
		return errors.Validation("collection owner must not be empty")
	}
	if slices.Contains(names, "") {
		return errors.Validationf("collection names for %q must not be empty", owner)
	}
	m.ensure(owner)
	m.names[owner] = slices.Clone(names)
	return nil
}

func (m *Membership) ensure(owner string) {
	if m.names == nil {
		m.names = make(map[string][]string)
	}
	if _, ok := m.names[owner]; !ok {
		m.owners = append(m.owners, owner)
		m.names[owner] = nil
	}
}

// Owners returns owners in insertion order.
func (m Membership) Owners() []string {
	return slices.Clone(m.owners)
}

// Names returns the collections owner placed the book in.
func (m Membership) Names(owner string) []string {
	return slices.Clone(m.names[owner])
}

// Len returns the number of owners.
func (m Membership) Len() int {
	return len(m.owners)
}

// Clone returns a deep copy.
func (m Membership) Clone() Membership {
	var c Membership
	for _, owner := range m.owners {
		c.ensure(owner)
		c.names[owner] = slices.Clone(m.names[owner])
	}
	return c
}

// Equal reports whether both memberships hold the same owners, in the same
// order, with the same collection names.
func (m Membership) Equal(other Membership) bool {
	if !slices.Equal(m.owners, other.owners) {
		return false
	}
	for _, owner := range m.owners {
		if !slices.Equal(m.names[owner], other.names[owner]) {
			return false
		}
	}
	return true
}
