// Package service is the boundary between the persistence engine and its
// collaborators: it hands out collection handles and reduces save and load
// failures to a logged pass/fail result.
package service

import (
	"strings"

	"github.com/listenupapp/bookwarm/internal/codec"
	"github.com/listenupapp/bookwarm/internal/collection"
	"github.com/listenupapp/bookwarm/internal/domain"
	"github.com/listenupapp/bookwarm/internal/errors"
	"github.com/listenupapp/bookwarm/internal/logger"
)

// Catalog opens collections stored in one configured format.
type Catalog struct {
	codecs map[codec.Format]codec.Codec
	logger *logger.Logger
	format codec.Format
}

// NewCatalog creates a catalog. format selects the codec used by Open and
// must be one of codecs.
func NewCatalog(format codec.Format, codecs []codec.Codec, log *logger.Logger) (*Catalog, error) {
	byFormat := make(map[codec.Format]codec.Codec, len(codecs))
	for _, cd := range codecs {
		byFormat[cd.Format()] = cd
	}
	if _, ok := byFormat[format]; !ok {
		return nil, errors.Usagef("no codec registered for format %q", format)
	}
	return &Catalog{codecs: byFormat, format: format, logger: log}, nil
}

// Format returns the default storage format.
func (c *Catalog) Format() codec.Format { return c.format }

// Open returns an empty handle for the owner's named collection in the
// default format. Call Load to read its stored contents.
func (c *Catalog) Open(owner, name string) (*CollectionService, error) {
	return c.OpenFormat(owner, name, c.format)
}

// OpenFormat is Open with an explicit storage format.
func (c *Catalog) OpenFormat(owner, name string, format codec.Format) (*CollectionService, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, errors.Validation("owner must not be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.Validation("collection name must not be empty")
	}
	cd, ok := c.codecs[format]
	if !ok {
		return nil, errors.Usagef("no codec registered for format %q", format)
	}

	coll := collection.New(owner, name)
	return &CollectionService{
		collection: coll,
		codec:      cd,
		logger: c.logger.WithFields(map[string]any{
			"owner":      owner,
			"collection": name,
			"format":     string(format),
		}),
	}, nil
}

// CollectionService is one collection bound to its storage file.
type CollectionService struct {
	collection *collection.Collection
	codec      codec.Codec
	logger     *logger.Logger
}

// Collection returns the in-memory collection.
func (s *CollectionService) Collection() *collection.Collection {
	return s.collection
}

// Path returns the file the collection is stored in.
func (s *CollectionService) Path() string {
	return s.codec.Path(s.collection)
}

// Save writes the collection to its file and reports whether it succeeded.
func (s *CollectionService) Save() bool {
	if err := s.codec.Save(s.collection); err != nil {
		s.logger.WithError(err).
			WithField("code", string(errors.CodeOf(err))).
			Error("failed to save collection", "path", s.Path())
		return false
	}

	s.logger.Info("collection saved",
		"path", s.Path(),
		"records", s.collection.Len(),
	)
	return true
}

// Load replaces the collection's contents with its file's records and
// reports whether it succeeded. On failure the contents are unchanged.
func (s *CollectionService) Load() bool {
	if err := s.codec.Load(s.collection); err != nil {
		s.logger.WithError(err).
			WithField("code", string(errors.CodeOf(err))).
			Error("failed to load collection", "path", s.Path())
		return false
	}

	s.logger.Info("collection loaded",
		"path", s.Path(),
		"records", s.collection.Len(),
	)
	return true
}

// Filter returns the collection's records sorted ascending by field.
func (s *CollectionService) Filter(field string) ([]*domain.UserBook, error) {
	books, err := s.collection.Filter(field)
	if err != nil {
		s.logger.WithError(err).Warn("invalid filter field", "field", field)
		return nil, err
	}
	return books, nil
}
