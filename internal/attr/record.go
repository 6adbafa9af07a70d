package attr

import (
	"strconv"
	"time"

	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

// Record is the coerced attributes of one stored book, before record
// validation.
type Record struct {
	values map[Name]any
	ISBN   int64
}

// NewRecord creates a record keyed by isbn. The key is also stored as the
// isbn attribute.
func NewRecord(isbn int64) *Record {
	return &Record{
		ISBN:   isbn,
		values: map[Name]any{ISBN: isbn},
	}
}

// Set coerces raw and stores it under name, overwriting any earlier value.
// On failure the record is unchanged.
func (r *Record) Set(name Name, raw string) error {
	v, err := Coerce(name, raw)
	if err != nil {
		return err
	}
	if name == ISBN {
		r.ISBN = v.(int64)
	}
	r.values[name] = v
	return nil
}

// SetNotes stores an already tokenized notes list.
func (r *Record) SetNotes(notes []string) {
	r.values[Notes] = notes
}

// Has reports whether name has been set.
func (r *Record) Has(name Name) bool {
	_, ok := r.values[name]
	return ok
}

// Value returns the coerced value stored under name.
func (r *Record) Value(name Name) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of attributes set, including isbn.
func (r *Record) Len() int {
	return len(r.values)
}

// UserBook validates the record and builds the user book it describes.
// Title, author, genre, no_of_pages and year_published are required; every
// other attribute falls back to the user book default.
func (r *Record) UserBook() (*domain.UserBook, error) {
	for _, name := range []Name{Title, Author, Genre, Pages, YearPublished} {
		if !r.Has(name) {
			return nil, errors.Validationf("record %d: missing %s", r.ISBN, name)
		}
	}

	var opts []domain.Option
	if v, ok := r.values[Edition]; ok {
		opts = append(opts, domain.WithEdition(v.(int)))
	}
	if v, ok := r.values[Publisher]; ok {
		opts = append(opts, domain.WithPublisher(v.(string)))
	}
	if v, ok := r.values[Read]; ok {
		opts = append(opts, domain.WithRead(v.(bool)))
	}
	if v, ok := r.values[ReadDate]; ok {
		opts = append(opts, domain.WithReadDate(v.(time.Time)))
	}
	if v, ok := r.values[Rating]; ok {
		opts = append(opts, domain.WithRating(v.(int)))
	}
	if v, ok := r.values[Tags]; ok {
		opts = append(opts, domain.WithTags(v.([]string)...))
	}
	if v, ok := r.values[InCollections]; ok {
		opts = append(opts, domain.WithMembership(v.(domain.Membership)))
	}
	if v, ok := r.values[Notes]; ok {
		opts = append(opts, domain.WithNotes(v.([]string)...))
	}

	u, err := domain.NewUserBook(
		domain.ISBN(r.ISBN),
		r.values[Title].(string),
		r.values[Author].(string),
		r.values[Genre].(string),
		r.values[Pages].(int),
		r.values[YearPublished].(int),
		opts...,
	)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeValidation, "record %d", r.ISBN)
	}
	return u, nil
}

// Format renders one attribute of u in its stored string form. Notes are
// joined with two spaces. Tags and collection membership that the stored
// form cannot represent are a validation error.
func Format(u *domain.UserBook, name Name) (string, error) {
	switch name {
	case ISBN:
		return u.ISBN().String(), nil
	case Title:
		return u.Title(), nil
	case Author:
		return u.Author(), nil
	case Genre:
		return u.Genre(), nil
	case Pages:
		return strconv.Itoa(u.Pages()), nil
	case YearPublished:
		return strconv.Itoa(u.YearPublished()), nil
	case Edition:
		return strconv.Itoa(u.Edition()), nil
	case Publisher:
		return u.Publisher(), nil
	case Read:
		return FormatBool(u.Read()), nil
	case ReadDate:
		return u.ReadDate().Format(DateLayout), nil
	case Rating:
		return strconv.Itoa(u.Rating()), nil
	case Tags:
		return JoinTags(u.Tags())
	case InCollections:
		return FlattenMembership(u.Membership())
	case Notes:
		return JoinNotes(u.Notes()), nil
	default:
		return "", nil
	}
}
