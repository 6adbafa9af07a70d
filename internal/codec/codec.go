// Package codec persists collections to disk. Each codec owns one file
// format and writes "<owner> <name>.<ext>" under a base directory.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/listenupapp/bookwarm/internal/collection"
	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
)

// Format names a storage format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatXML  Format = "xml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatXML}
}

// Codec converts a collection to and from one external format.
type Codec interface {
	// Format returns the format this codec handles.
	Format() Format
	// Path returns the file a collection is stored in.
	Path(c *collection.Collection) string
	// Encode writes every record of c to w in ascending catalog-number order.
	Encode(w io.Writer, c *collection.Collection) error
	// Decode reads a complete document and returns the validated records.
	Decode(r io.Reader) (map[domain.ISBN]*domain.UserBook, error)
	// Save writes c to its file, replacing any previous contents.
	Save(c *collection.Collection) error
	// Load replaces the contents of c with its file's records. On any
	// failure c is left unchanged.
	Load(c *collection.Collection) error
}

// New returns the codec for format.
func New(format Format, baseDir string, logger *slog.Logger) (Codec, error) {
	switch format {
	case FormatText:
		return NewText(baseDir, logger), nil
	case FormatXML:
		return NewXML(baseDir, logger), nil
	default:
		return nil, errors.Usagef("unknown format %q", format)
	}
}

// FileName returns the file name for a collection: "<owner> <name><ext>".
func FileName(owner, name, ext string) string {
	return owner + " " + name + ext
}

type encodeFunc func(io.Writer, *collection.Collection) error

type decodeFunc func(io.Reader) (map[domain.ISBN]*domain.UserBook, error)

// files is the on-disk half shared by every codec.
type files struct {
	logger  *slog.Logger
	baseDir string
	ext     string
}

func (f files) path(c *collection.Collection) string {
	return filepath.Join(f.baseDir, FileName(c.Owner(), c.Name(), f.ext))
}

func (f files) save(c *collection.Collection, encode encodeFunc) error {
	path := f.path(c)

	var buf bytes.Buffer
	if err := encode(&buf, c); err != nil {
		return err
	}
	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "create %s", f.baseDir)
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "save %s", path)
	}

	f.logger.Debug("collection saved",
		"owner", c.Owner(),
		"collection", c.Name(),
		"path", path,
		"records", c.Len(),
	)
	return nil
}

func (f files) load(c *collection.Collection, decode decodeFunc) error {
	path := f.path(c)

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.CodeIO, "open %s", path)
	}
	defer file.Close()

	records, err := decode(file)
	if err != nil {
		return err
	}
	if err := c.Replace(records); err != nil {
		return err
	}

	f.logger.Debug("collection loaded",
		"owner", c.Owner(),
		"collection", c.Name(),
		"path", path,
		"records", c.Len(),
	)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers see either the old file or the new one.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bookwarm-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
