package codec

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/listenupapp/bookwarm/internal/attr"
	"github.com/listenupapp/bookwarm/internal/collection"
	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
	"github.com/listenupapp/bookwarm/internal/grammar"
)

// TextExt is the file extension of the text format.
const TextExt = ".txt"

// Text reads and writes the block-structured text format:
//
//	[1234567890]
//		title=Hello
//		...
//		NOTES>
//			first
//		<NOTES
type Text struct {
	files
}

// NewText creates a text codec storing files under baseDir.
func NewText(baseDir string, logger *slog.Logger) *Text {
	return &Text{files: files{baseDir: baseDir, ext: TextExt, logger: logger}}
}

// Format returns FormatText.
func (t *Text) Format() Format { return FormatText }

// Path returns "<baseDir>/<owner> <name>.txt".
func (t *Text) Path(c *collection.Collection) string { return t.path(c) }

// Encode writes one block per record. Each note is written on its own line;
// since notes are read back as whitespace-delimited words, a note containing
// spaces loads as several notes. Values with line breaks and notes holding a
// word that starts with "<NOTES" are rejected.
func (t *Text) Encode(w io.Writer, c *collection.Collection) error {
	var b strings.Builder
	for isbn, u := range c.All() {
		fmt.Fprintf(&b, "[%s]\n", isbn)
		for _, name := range attr.Line {
			v, err := attr.Format(u, name)
			if err != nil {
				return errors.Wrapf(err, errors.CodeValidation, "isbn %s", isbn)
			}
			if strings.ContainsAny(v, "\r\n") {
				return errors.Validationf("isbn %s: %s contains a line break", isbn, name)
			}
			fmt.Fprintf(&b, "\t%s=%s\n", name, v)
		}
		fmt.Fprintf(&b, "\t%s\n", grammar.NotesOpen)
		for _, note := range u.Notes() {
			if closesNotes(note) {
				return errors.Validationf("isbn %s: note %q would end the notes section", isbn, note)
			}
			fmt.Fprintf(&b, "\t\t%s\n", note)
		}
		fmt.Fprintf(&b, "\t%s\n\n", grammar.NotesClose)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, errors.CodeIO, "write collection")
	}
	return nil
}

// closesNotes reports whether any word of note would be read as the end of
// the notes section.
func closesNotes(note string) bool {
	for _, word := range strings.Fields(note) {
		if strings.HasPrefix(word, grammar.NotesClose) {
			return true
		}
	}
	return false
}

// Decode parses a complete text document. A leading UTF-8 byte order mark
// is ignored.
func (t *Text) Decode(r io.Reader) (map[domain.ISBN]*domain.UserBook, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "read collection")
	}

	doc, err := grammar.Parse(string(data))
	if err != nil {
		return nil, classify(err)
	}
	return userBooks(doc.All())
}

// Save writes c to its text file.
func (t *Text) Save(c *collection.Collection) error {
	return t.save(c, t.Encode)
}

// Load replaces the contents of c with its text file's records.
func (t *Text) Load(c *collection.Collection) error {
	return t.load(c, t.Decode)
}

// classify codes a decoding failure as a coercion error when a value could
// not be converted, and a parse error otherwise.
func classify(err error) error {
	var coercionErr *attr.CoercionError
	if errors.As(err, &coercionErr) {
		return errors.Wrap(err, errors.CodeCoercion, "invalid attribute value")
	}
	return errors.Wrap(err, errors.CodeParse, "malformed collection")
}

// userBooks builds and validates a user book from every record.
func userBooks(records iter.Seq2[int64, *attr.Record]) (map[domain.ISBN]*domain.UserBook, error) {
	out := make(map[domain.ISBN]*domain.UserBook)
	for isbn, rec := range records {
		u, err := rec.UserBook()
		if err != nil {
			return nil, err
		}
		out[domain.ISBN(isbn)] = u
	}
	return out, nil
}
