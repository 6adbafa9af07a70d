package grammar

import (
	"iter"
	"slices"

	"github.com/listenupapp/bookwarm/internal/attr"
)

// Document is a parsed collection file: records keyed by catalog number,
// in the order their blocks first appeared.
type Document struct {
	records map[int64]*attr.Record
	order   []int64
}

func newDocument() *Document {
	return &Document{records: make(map[int64]*attr.Record)}
}

// put stores rec. A repeated catalog number replaces the earlier record but
// keeps its position.
func (d *Document) put(rec *attr.Record) {
	if _, ok := d.records[rec.ISBN]; !ok {
		d.order = append(d.order, rec.ISBN)
	}
	d.records[rec.ISBN] = rec
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.order)
}

// ISBNs returns the catalog numbers in document order.
func (d *Document) ISBNs() []int64 {
	return slices.Clone(d.order)
}

// Get returns the record for isbn.
func (d *Document) Get(isbn int64) (*attr.Record, bool) {
	rec, ok := d.records[isbn]
	return rec, ok
}

// All returns an iterator over records in document order.
func (d *Document) All() iter.Seq2[int64, *attr.Record] {
	return func(yield func(int64, *attr.Record) bool) {
		for _, isbn := range d.order {
			if !yield(isbn, d.records[isbn]) {
				return
			}
		}
	}
}
