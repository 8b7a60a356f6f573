/*
Package dataset provides the immutable record collections decision trees
are induced from: records carrying a fixed-length string of single-byte
categorical feature values and one of exactly two labels.
*/
package dataset

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingleLabel is returned by Builder.Build when all the records added
// to the builder carry the same label. A decision tree cannot separate
// single-labeled data.
var ErrSingleLabel = errors.New("dataset contains a single label")

/*
Record represents one labeled example: a unique identifier (kept for
traceability only, never consulted by any algorithm), a label and a
fixed-length sequence of feature values. Records are immutable after
construction.
*/
type Record struct {
	id       string
	label    byte
	features string
}

/*
NewRecord takes an identifier, a label and a feature string and returns
a Record with them.
*/
func NewRecord(id string, label byte, features string) Record {
	return Record{id, label, features}
}

// ID returns the record's unique identifier.
func (r Record) ID() string {
	return r.id
}

// Label returns the record's label.
func (r Record) Label() byte {
	return r.label
}

// Features returns the record's feature string.
func (r Record) Features() string {
	return r.features
}

// Feature returns the feature value at the given position.
func (r Record) Feature(i int) byte {
	return r.features[i]
}

// NumFeatures returns the length of the record's feature string.
func (r Record) NumFeatures() int {
	return len(r.features)
}

/*
Dataset represents an immutable ordered collection of records together
with the closed set of feature values observed across all records and
positions, the two labels and the common feature-string length.

Datasets are built with a Builder; once built they are never modified.
*/
type Dataset struct {
	records     []Record
	values      []byte
	labels      [2]byte
	numFeatures int
}

// Records returns the dataset's records in the order they were added.
// The returned slice is shared: callers must not modify it.
func (ds *Dataset) Records() []Record {
	return ds.records
}

// Count returns the number of records in the dataset.
func (ds *Dataset) Count() int {
	return len(ds.records)
}

// FeatureValues returns every distinct feature value observed in the
// dataset, in first-appearance order. Splits create one branch per value.
func (ds *Dataset) FeatureValues() []byte {
	return ds.values
}

// Labels returns the dataset's two labels in first-appearance order.
func (ds *Dataset) Labels() [2]byte {
	return ds.labels
}

// NumFeatures returns the feature-string length shared by all records.
func (ds *Dataset) NumFeatures() int {
	return ds.numFeatures
}

/*
Entropy returns the binary Shannon entropy of the label distribution of
the given records, taking p as the fraction of records labeled label0.
By convention 0·log2(0) is 0, and the entropy of an empty slice is 0.
*/
func Entropy(records []Record, label0 byte) float64 {
	var count int
	for _, r := range records {
		if r.Label() == label0 {
			count++
		}
	}
	var p float64
	if len(records) > 0 {
		p = float64(count) / float64(len(records))
	}
	return -p*log2(p) - (1.0-p)*log2(1.0-p)
}

func log2(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Log2(x)
}

/*
Builder accumulates records one at a time, validating the dataset
invariants incrementally, and produces an immutable Dataset.
*/
type Builder struct {
	records     []Record
	values      []byte
	seenValues  map[byte]bool
	labels      []byte
	numFeatures int
}

// NewBuilder returns an empty dataset builder.
func NewBuilder() *Builder {
	return &Builder{seenValues: make(map[byte]bool), numFeatures: -1}
}

/*
Add takes an identifier, a label and a feature string and adds a record
with them to the builder. It returns an error if the record's feature
string disagrees in length with previously added records, or if adding
the record's label would raise the number of distinct labels above two.
On error the builder is left as it was before the call.
*/
func (b *Builder) Add(id string, label byte, features string) error {
	if b.numFeatures == -1 {
		b.numFeatures = len(features)
	} else if b.numFeatures != len(features) {
		return fmt.Errorf("adding record %q: got %d feature values, want %d", id, len(features), b.numFeatures)
	}
	if !b.seenLabel(label) && len(b.labels) == 2 {
		return fmt.Errorf("adding record %q: label %q raises the number of distinct labels above 2", id, label)
	}
	if !b.seenLabel(label) {
		b.labels = append(b.labels, label)
	}
	for i := 0; i < len(features); i++ {
		v := features[i]
		if !b.seenValues[v] {
			b.seenValues[v] = true
			b.values = append(b.values, v)
		}
	}
	b.records = append(b.records, NewRecord(id, label, features))
	return nil
}

/*
Build returns the immutable Dataset with the records added so far, or an
error if fewer than two distinct labels were supplied: ErrSingleLabel
when all records share one label, another error when there are no
records at all.
*/
func (b *Builder) Build() (*Dataset, error) {
	if len(b.records) == 0 {
		return nil, fmt.Errorf("building dataset: no records were added")
	}
	if len(b.labels) < 2 {
		return nil, ErrSingleLabel
	}
	ds := &Dataset{
		records:     b.records,
		values:      b.values,
		labels:      [2]byte{b.labels[0], b.labels[1]},
		numFeatures: b.numFeatures,
	}
	return ds, nil
}

func (b *Builder) seenLabel(label byte) bool {
	for _, l := range b.labels {
		if l == label {
			return true
		}
	}
	return false
}
