package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/listenupapp/bookwarm/internal/errors"
)

// MinDate is the read date of a book that has never been read.
//
//nolint:gochecknoglobals // Zero calendar date, 0001-01-01
var MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Tags is a set of non-empty tag strings.
type Tags map[string]struct{}

// NewTags builds a tag set, rejecting empty tags.
func NewTags(tags ...string) (Tags, error) {
	set := make(Tags, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return nil, errors.Validation("tag must not be empty")
		}
		set[tag] = struct{}{}
	}
	return set, nil
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// Sorted returns the tags in ascending order.
func (t Tags) Sorted() []string {
	return slices.Sorted(maps.Keys(t))
}

// UserBook is a book as owned by a user: reading state, rating, notes,
// tags and the collections it has been placed in.
type UserBook struct {
	Book
	readDate   time.Time
	notes      []string
	tags       Tags
	membership Membership
	rating     int
	read       bool
}

// Option configures a UserBook at construction.
type Option func(*UserBook) error

// WithEdition sets the edition.
func WithEdition(edition int) Option {
	return func(u *UserBook) error { return u.SetEdition(edition) }
}

// WithPublisher sets the publisher.
func WithPublisher(publisher string) Option {
	return func(u *UserBook) error {
		u.SetPublisher(publisher)
		return nil
	}
}

// WithRead sets the read flag.
func WithRead(read bool) Option {
	return func(u *UserBook) error {
		u.SetRead(read)
		return nil
	}
}

// WithReadDate sets the read date.
func WithReadDate(date time.Time) Option {
	return func(u *UserBook) error { return u.SetReadDate(date) }
}

// WithRating sets the rating.
func WithRating(rating int) Option {
	return func(u *UserBook) error { return u.SetRating(rating) }
}

// WithNotes sets the notes.
func WithNotes(notes ...string) Option {
	return func(u *UserBook) error { return u.SetNotes(notes) }
}

// WithTags sets the tags.
func WithTags(tags ...string) Option {
	return func(u *UserBook) error { return u.SetTags(tags...) }
}

// WithMembership sets the collection membership.
func WithMembership(m Membership) Option {
	return func(u *UserBook) error {
		u.SetMembership(m)
		return nil
	}
}

// NewUserBook creates an unread, unrated user book and applies opts in order.
// The first option that fails aborts construction.
func NewUserBook(isbn ISBN, title, author, genre string, pages, year int, opts ...Option) (*UserBook, error) {
	book, err := NewBook(isbn, title, author, genre, pages, year)
	if err != nil {
		return nil, err
	}

	u := &UserBook{
		Book:     *book,
		readDate: MinDate,
		tags:     Tags{},
	}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Read reports whether the book has been read.
func (u *UserBook) Read() bool { return u.read }

// ReadDate returns the date the book was read, or MinDate.
func (u *UserBook) ReadDate() time.Time { return u.readDate }

// Rating returns the rating from 0 to 5.
func (u *UserBook) Rating() int { return u.rating }

// Notes returns a copy of the notes.
func (u *UserBook) Notes() []string { return slices.Clone(u.notes) }

// Tags returns a copy of the tag set.
func (u *UserBook) Tags() Tags { return maps.Clone(u.tags) }

// Membership returns a copy of the collection membership.
func (u *UserBook) Membership() Membership { return u.membership.Clone() }

// SetRead sets the read flag.
func (u *UserBook) SetRead(read bool) {
	u.read = read
}

// SetReadDate sets the read date, keeping only the calendar date. The year
// must have four digits, from 1 to 9999.
func (u *UserBook) SetReadDate(date time.Time) error {
	y, m, d := date.Date()
	if err := check.Var("read_date year", y, "gte=1,lte=9999"); err != nil {
		return err
	}
	u.readDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

// SetRating sets the rating; it must be between 0 and 5.
func (u *UserBook) SetRating(rating int) error {
	if err := check.Var("rating", rating, "gte=0,lte=5"); err != nil {
		return err
	}
	u.rating = rating
	return nil
}

// SetNotes replaces the notes; every note must be non-empty.
func (u *UserBook) SetNotes(notes []string) error {
	if slices.Contains(notes, "") {
		return errors.Validation("note must not be empty")
	}
	u.notes = slices.Clone(notes)
	return nil
}

// SetTags replaces the tags; every tag must be non-empty.
func (u *UserBook) SetTags(tags ...string) error {
	set, err := NewTags(tags...)
	if err != nil {
		return err
	}
	u.tags = set
	return nil
}

// SetMembership replaces the collection membership.
func (u *UserBook) SetMembership(m Membership) {
	u.membership = m.Clone()
}

// AddNote appends a non-empty note.
func (u *UserBook) AddNote(note string) error {
	if note == "" {
		return errors.Validation("note must not be empty")
	}
	u.notes = append(u.notes, note)
	return nil
}

// AddTag adds a non-empty tag.
func (u *UserBook) AddTag(tag string) error {
	if tag == "" {
		return errors.Validation("tag must not be empty")
	}
	if u.tags == nil {
		u.tags = Tags{}
	}
	u.tags[tag] = struct{}{}
	return nil
}

// AddCollectionName records that owner placed the book in collection name.
func (u *UserBook) AddCollectionName(owner, name string) error {
	return u.membership.Add(owner, name)
}
