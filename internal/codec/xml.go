package codec

import (
	"encoding/xml"
	"io"
	"iter"
	"log/slog"

	"golang.org/x/net/html/charset"

	"github.com/listenupapp/bookwarm/internal/attr"
	"github.com/listenupapp/bookwarm/internal/collection"
	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

// XMLExt is the file extension of the XML format.
const XMLExt = ".xml"

type xmlBooks struct {
	XMLName xml.Name  `xml:"books"`
	Books   []xmlBook `xml:"book"`
}

// xmlBook mirrors a <book> element. Pointers distinguish a missing element
// from an empty one.
type xmlBook struct {
	ISBN          *string `xml:"isbn"`
	Title         *string `xml:"title"`
	Author        *string `xml:"author"`
	Genre         *string `xml:"genre"`
	Pages         *string `xml:"no_of_pages"`
	YearPublished *string `xml:"year_published"`
	Edition       *string `xml:"edition"`
	Publisher     *string `xml:"publisher"`
	Read          *string `xml:"read"`
	ReadDate      *string `xml:"read_date"`
	Rating        *string `xml:"rating"`
	Tags          *string `xml:"tags"`
	InCollections *string `xml:"in_collections"`
	Notes         *string `xml:"notes"`
}

func (b *xmlBook) field(name attr.Name) **string {
	switch name {
	case attr.ISBN:
		return &b.ISBN
	case attr.Title:
		return &b.Title
	case attr.Author:
		return &b.Author
	case attr.Genre:
		return &b.Genre
	case attr.Pages:
		return &b.Pages
	case attr.YearPublished:
		return &b.YearPublished
	case attr.Edition:
		return &b.Edition
	case attr.Publisher:
		return &b.Publisher
	case attr.Read:
		return &b.Read
	case attr.ReadDate:
		return &b.ReadDate
	case attr.Rating:
		return &b.Rating
	case attr.Tags:
		return &b.Tags
	case attr.InCollections:
		return &b.InCollections
	case attr.Notes:
		return &b.Notes
	default:
		return nil
	}
}

// XML reads and writes collections as <books><book>...</book></books>.
// Every child element of a book is required on load.
type XML struct {
	files
}

// NewXML creates an XML codec storing files under baseDir.
func NewXML(baseDir string, logger *slog.Logger) *XML {
	return &XML{files: files{baseDir: baseDir, ext: XMLExt, logger: logger}}
}

// Format returns FormatXML.
func (x *XML) Format() Format { return FormatXML }

// Path returns "<baseDir>/<owner> <name>.xml".
func (x *XML) Path(c *collection.Collection) string { return x.path(c) }

// Encode writes c as an indented UTF-8 document with an XML header.
func (x *XML) Encode(w io.Writer, c *collection.Collection) error {
	doc := xmlBooks{Books: make([]xmlBook, 0, c.Len())}
	for _, u := range c.All() {
		var b xmlBook
		for _, name := range attr.Elements {
			v, err := attr.Format(u, name)
			if err != nil {
				return errors.Wrapf(err, errors.CodeValidation, "isbn %s", u.ISBN())
			}
			*b.field(name) = &v
		}
		doc.Books = append(doc.Books, b)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, errors.CodeIO, "write collection")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, errors.CodeIO, "write collection")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, errors.CodeIO, "write collection")
	}
	return nil
}

// Decode reads a complete XML document. Documents declaring an encoding
// other than UTF-8 are transcoded first.
func (x *XML) Decode(r io.Reader) (map[domain.ISBN]*domain.UserBook, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc xmlBooks
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "malformed collection")
	}

	records := make([]*attr.Record, 0, len(doc.Books))
	for i := range doc.Books {
		rec, err := doc.Books[i].record(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return userBooks(recordSeq(records))
}

// Save writes c to its XML file.
func (x *XML) Save(c *collection.Collection) error {
	return x.save(c, x.Encode)
}

// Load replaces the contents of c with its XML file's records.
func (x *XML) Load(c *collection.Collection) error {
	return x.load(c, x.Decode)
}

// record coerces every element of the i-th book.
func (b *xmlBook) record(i int) (*attr.Record, error) {
	for _, name := range attr.Elements {
		if *b.field(name) == nil {
			return nil, errors.Parsef("book %d: missing <%s> element", i+1, name)
		}
	}

	isbn, err := attr.Coerce(attr.ISBN, *b.ISBN)
	if err != nil {
		return nil, classify(err)
	}
	rec := attr.NewRecord(isbn.(int64))
	for _, name := range attr.Elements[1:] {
		if err := rec.Set(name, **b.field(name)); err != nil {
			return nil, classify(err)
		}
	}
	return rec, nil
}

func recordSeq(records []*attr.Record) iter.Seq2[int64, *attr.Record] {
	return func(yield func(int64, *attr.Record) bool) {
		for _, rec := range records {
			if !yield(rec.ISBN, rec) {
				return
			}
		}
	}
}
