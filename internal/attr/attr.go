// Package attr defines the attribute names shared by the text and XML
// collection formats, the type coercion applied to each raw value, and the
// conversion of a coerced attribute set into a domain.UserBook.
package attr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

// Name is a recognized attribute name.
type Name string

// Attribute names, as they appear in both stored formats.
const (
	ISBN          Name = "isbn"
	Title         Name = "title"
	Author        Name = "author"
	Genre         Name = "genre"
	Pages         Name = "no_of_pages"
	YearPublished Name = "year_published"
	Edition       Name = "edition"
	Publisher     Name = "publisher"
	Read          Name = "read"
	ReadDate      Name = "read_date"
	Rating        Name = "rating"
	Tags          Name = "tags"
	InCollections Name = "in_collections"
	Notes         Name = "notes"
)

// DateLayout is the stored form of read_date.
const DateLayout = "2006-01-02"

// Line is the key-value attributes of a text block, in the order they are
// written. The ISBN comes from the block header and notes from the NOTES
// section, so neither is a line attribute.
//
//nolint:gochecknoglobals // Static format table
var Line = []Name{
	Title, Author, Genre, Pages, YearPublished, Edition, Publisher,
	Read, ReadDate, Rating, Tags, InCollections,
}

// Elements is the child elements of an XML book element, in the order they
// are written.
//
//nolint:gochecknoglobals // Static format table
var Elements = []Name{
	ISBN, Title, Author, Genre, Pages, YearPublished, Edition, Publisher,
	Read, ReadDate, Rating, Tags, InCollections, Notes,
}

// IsLine reports whether key may appear as a KEY=VALUE line.
func IsLine(key string) bool {
	return slices.Contains(Line, Name(key))
}

// CoercionError reports a raw value that cannot be converted to its
// attribute's type.
type CoercionError struct {
	Name  Name
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s value %q: %v", e.Name, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Coerce converts raw to the Go type used for name:
//
//	isbn, no_of_pages, year_published, edition, rating  int64 / int
//	read_date                                           time.Time
//	read                                                bool
//	tags                                                []string
//	in_collections                                      domain.Membership
//	notes                                               []string
//	anything else                                       string
//
// read is true for every non-empty value, including "false" and "False".
// Stored files have always been read this way, so a book saved as unread
// loads as read.
func Coerce(name Name, raw string) (any, error) {
	switch name {
	case ISBN:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, &CoercionError{Name: name, Value: raw, Err: err}
		}
		return n, nil
	case Pages, YearPublished, Edition, Rating:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &CoercionError{Name: name, Value: raw, Err: err}
		}
		return n, nil
	case ReadDate:
		d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, &CoercionError{Name: name, Value: raw, Err: err}
		}
		return d, nil
	case Read:
		return raw != "", nil
	case Tags:
		return strings.Fields(raw), nil
	case InCollections:
		m, err := ParseMembership(raw)
		if err != nil {
			return nil, &CoercionError{Name: name, Value: raw, Err: err}
		}
		return m, nil
	case Notes:
		return SplitNotes(raw), nil
	default:
		return raw, nil
	}
}

// FormatBool renders the read flag.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// JoinTags renders a tag set space-separated in ascending order. A tag
// containing whitespace would read back as several tags and is rejected.
func JoinTags(t domain.Tags) (string, error) {
	tags := t.Sorted()
	for _, tag := range tags {
		if strings.ContainsFunc(tag, unicode.IsSpace) {
			return "", errors.Validationf("tag %q must not contain whitespace", tag)
		}
	}
	return strings.Join(tags, " "), nil
}

// notesSeparator joins notes in single-field encodings.
const notesSeparator = "  "

// JoinNotes renders notes separated by two spaces.
func JoinNotes(notes []string) string {
	return strings.Join(notes, notesSeparator)
}

// SplitNotes reverses JoinNotes. Empty fragments, which only arise from
// notes that themselves contain double spaces, are dropped.
func SplitNotes(s string) []string {
	if s == "" {
		return nil
	}
	var notes []string
	for _, n := range strings.Split(s, notesSeparator) {
		if n != "" {
			notes = append(notes, n)
		}
	}
	return notes
}
