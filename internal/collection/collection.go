// Package collection holds one owner's named set of user books, keyed by
// catalog number and always iterated in ascending catalog-number order.
package collection

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

// Filter fields accepted by Collection.Filter.
const (
	FieldISBN          = "isbn"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldYearPublished = "year_published"
	FieldEdition       = "edition"
	FieldPublisher     = "publisher"
)

// sortKeys orders records by each filterable field.
//
//nolint:gochecknoglobals // Static comparator table
var sortKeys = map[string]func(a, b *domain.UserBook) int{
	FieldISBN:          func(a, b *domain.UserBook) int { return cmp.Compare(a.ISBN(), b.ISBN()) },
	FieldTitle:         func(a, b *domain.UserBook) int { return strings.Compare(a.Title(), b.Title()) },
	FieldAuthor:        func(a, b *domain.UserBook) int { return strings.Compare(a.Author(), b.Author()) },
	FieldGenre:         func(a, b *domain.UserBook) int { return strings.Compare(a.Genre(), b.Genre()) },
	FieldYearPublished: func(a, b *domain.UserBook) int { return cmp.Compare(a.YearPublished(), b.YearPublished()) },
	FieldEdition:       func(a, b *domain.UserBook) int { return cmp.Compare(a.Edition(), b.Edition()) },
	FieldPublisher:     func(a, b *domain.UserBook) int { return strings.Compare(a.Publisher(), b.Publisher()) },
}

// FilterFields returns the fields accepted by Filter, sorted.
func FilterFields() []string {
	return slices.Sorted(maps.Keys(sortKeys))
}

// Collection is a named set of user books belonging to one owner.
type Collection struct {
	owner   string
	name    string
	records map[domain.ISBN]*domain.UserBook
}

// New creates an empty collection.
func New(owner, name string) *Collection {
	return &Collection{
		owner:   owner,
		name:    name,
		records: make(map[domain.ISBN]*domain.UserBook),
	}
}

// NewFromRecords creates a collection holding records. The whole set is
// validated first; nothing is created if any entry is rejected.
func NewFromRecords(owner, name string, records map[domain.ISBN]*domain.UserBook) (*Collection, error) {
	c := New(owner, name)
	if err := c.Replace(records); err != nil {
		return nil, err
	}
	return c, nil
}

// Owner returns the collection owner.
func (c *Collection) Owner() string { return c.owner }

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Insert stores rec under isbn, replacing any existing record.
func (c *Collection) Insert(isbn domain.ISBN, rec *domain.UserBook) error {
	if err := checkEntry(isbn, rec); err != nil {
		return err
	}
	c.records[isbn] = rec
	return nil
}

// GetOrInsert returns the record stored under isbn, inserting rec first if
// there is none.
func (c *Collection) GetOrInsert(isbn domain.ISBN, rec *domain.UserBook) (*domain.UserBook, error) {
	if existing, ok := c.records[isbn]; ok {
		return existing, nil
	}
	if err := c.Insert(isbn, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record stored under isbn.
func (c *Collection) Delete(isbn domain.ISBN) error {
	if _, ok := c.records[isbn]; !ok {
		return errors.NotFoundf("isbn %s not in collection %q", isbn, c.name)
	}
	delete(c.records, isbn)
	return nil
}

// Get returns the record stored under isbn.
func (c *Collection) Get(isbn domain.ISBN) (*domain.UserBook, error) {
	rec, ok := c.records[isbn]
	if !ok {
		return nil, errors.NotFoundf("isbn %s not in collection %q", isbn, c.name)
	}
	return rec, nil
}

// Contains reports whether a record is stored under isbn.
func (c *Collection) Contains(isbn domain.ISBN) bool {
	_, ok := c.records[isbn]
	return ok
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Keys returns the catalog numbers in ascending order.
func (c *Collection) Keys() []domain.ISBN {
	return slices.Sorted(maps.Keys(c.records))
}

// Values returns the records in ascending catalog-number order.
func (c *Collection) Values() []*domain.UserBook {
	keys := c.Keys()
	values := make([]*domain.UserBook, len(keys))
	for i, k := range keys {
		values[i] = c.records[k]
	}
	return values
}

// All returns an iterator over the records in ascending catalog-number order.
func (c *Collection) All() iter.Seq2[domain.ISBN, *domain.UserBook] {
	return func(yield func(domain.ISBN, *domain.UserBook) bool) {
		for _, k := range c.Keys() {
			if !yield(k, c.records[k]) {
				return
			}
		}
	}
}

// Replace swaps the contents for records. Every entry is checked before
// anything changes, so a rejected set leaves the collection as it was.
func (c *Collection) Replace(records map[domain.ISBN]*domain.UserBook) error {
	for isbn, rec := range records {
		if err := checkEntry(isbn, rec); err != nil {
			return err
		}
	}
	c.records = maps.Clone(records)
	if c.records == nil {
		c.records = make(map[domain.ISBN]*domain.UserBook)
	}
	return nil
}

// Filter returns the records sorted ascending by field. Records that compare
// equal keep catalog-number order.
func (c *Collection) Filter(field string) ([]*domain.UserBook, error) {
	less, ok := sortKeys[field]
	if !ok {
		valid := FilterFields()
		return nil, errors.Usagef("cannot filter by %q: valid fields are %s", field, strings.Join(valid, ", ")).
			WithDetails(map[string]any{"field": field, "valid": valid})
	}

	out := c.Values()
	slices.SortStableFunc(out, less)
	return out, nil
}

func checkEntry(isbn domain.ISBN, rec *domain.UserBook) error {
	if err := isbn.Validate(); err != nil {
		return err
	}
	if rec == nil {
		return errors.Validationf("isbn %s: record must not be nil", isbn)
	}
	if rec.ISBN() != isbn {
		return errors.Validationf("isbn %s does not match record isbn %s", isbn, rec.ISBN())
	}
	return nil
}
