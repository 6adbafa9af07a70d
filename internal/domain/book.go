// Package domain contains the book records a bookwarm user catalogs and their field invariants.
package domain

import (
	"strconv"

	"github.com/listenupapp/bookwarm/internal/validation"
)

// check enforces field rules on every construction and setter call.
//
//nolint:gochecknoglobals // Shared, stateless validator for all records
var check = validation.New()

// ISBN is a catalog number: an integer with exactly 10 or 13 decimal digits.
type ISBN int64

// Valid reports whether the ISBN has exactly 10 or 13 digits.
func (i ISBN) Valid() bool {
	return check.Var("isbn", int64(i), validation.TagISBN) == nil
}

// Validate returns a validation error when the ISBN has the wrong digit count.
func (i ISBN) Validate() error {
	return check.Var("isbn", int64(i), validation.TagISBN)
}

// String returns the decimal form of the ISBN.
func (i ISBN) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Book is a catalogued book. ISBN, title and author are fixed at
// construction; every other field is validated again on each write.
type Book struct {
	isbn      ISBN
	title     string
	author    string
	genre     string
	publisher string
	pages     int
	year      int
	edition   int
}

// bookFields carries the constructor arguments of a Book through struct
// validation so every failing field is reported under its attribute name.
type bookFields struct {
	ISBN   int64  `attr:"isbn" validate:"isbn"`
	Title  string `attr:"title" validate:"min=3"`
	Author string `attr:"author" validate:"min=3"`
	Genre  string `attr:"genre" validate:"min=2"`
	Pages  int    `attr:"no_of_pages" validate:"gt=0"`
	Year   int    `attr:"year_published" validate:"notfuture"`
}

// NewBook creates a book with edition 1 and no publisher.
func NewBook(isbn ISBN, title, author, genre string, pages, year int) (*Book, error) {
	if err := check.Validate(bookFields{
		ISBN:   int64(isbn),
		Title:  title,
		Author: author,
		Genre:  genre,
		Pages:  pages,
		Year:   year,
	}); err != nil {
		return nil, err
	}

	return &Book{
		isbn:    isbn,
		title:   title,
		author:  author,
		genre:   genre,
		pages:   pages,
		year:    year,
		edition: 1,
	}, nil
}

// ISBN returns the catalog number.
func (b *Book) ISBN() ISBN { return b.isbn }

// Title returns the title.
func (b *Book) Title() string { return b.title }

// Author returns the author.
func (b *Book) Author() string { return b.author }

// Genre returns the genre.
func (b *Book) Genre() string { return b.genre }

// Pages returns the page count.
func (b *Book) Pages() int { return b.pages }

// YearPublished returns the publication year.
func (b *Book) YearPublished() int { return b.year }

// Edition returns the edition number.
func (b *Book) Edition() int { return b.edition }

// Publisher returns the publisher, which may be empty.
func (b *Book) Publisher() string { return b.publisher }

// SetGenre sets the genre; it must have at least 2 characters.
func (b *Book) SetGenre(genre string) error {
	if err := check.Var("genre", genre, "min=2"); err != nil {
		return err
	}
	b.genre = genre
	return nil
}

// SetPages sets the page count; it must be positive.
func (b *Book) SetPages(pages int) error {
	if err := check.Var("no_of_pages", pages, "gt=0"); err != nil {
		return err
	}
	b.pages = pages
	return nil
}

// SetYearPublished sets the publication year; it must not be in the future.
func (b *Book) SetYearPublished(year int) error {
	if err := check.Var("year_published", year, validation.TagNotFuture); err != nil {
		return err
	}
	b.year = year
	return nil
}

// SetEdition sets the edition; it must be positive.
func (b *Book) SetEdition(edition int) error {
	if err := check.Var("edition", edition, "gt=0"); err != nil {
		return err
	}
	b.edition = edition
	return nil
}

// SetPublisher sets the publisher. Any string, including empty, is accepted.
func (b *Book) SetPublisher(publisher string) {
	b.publisher = publisher
}
