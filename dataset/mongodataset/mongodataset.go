/*
Package mongodataset reads and writes dataset records on a MongoDB
collection.
*/
package mongodataset

import (
	"context"
	"fmt"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/nampas/decisiontree/dataset"
)

const recordsCollectionName = "records"

type recordDoc struct {
	ID       string `bson:"_id"`
	Label    string `bson:"label"`
	Features string `bson:"features"`
}

/*
Store reads and writes records on the records collection of the default
database of a MongoDB session.
*/
type Store struct {
	session *mgo.Session
}

/*
Open takes a MongoDB database session and returns a Store that works on
the records collection of the session's default database.
*/
func Open(session *mgo.Session) *Store {
	return &Store{session}
}

/*
Write takes a context and a slice of records and inserts them, in
order, on the records collection. It returns the number of records
written and an error if the insertion fails.
*/
func (s *Store) Write(ctx context.Context, records []dataset.Record) (int, error) {
	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, &recordDoc{ID: r.ID(), Label: string(r.Label()), Features: r.Features()})
	}
	err := s.recordsCollection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting records in mongodb: %v", err)
	}
	return len(records), nil
}

/*
Read takes a context and returns a channel of records streamed from the
records collection in insertion order and a channel that yields the
error that stopped the streaming, if any, and is closed when the
streaming is over.
*/
func (s *Store) Read(ctx context.Context) (<-chan dataset.Record, <-chan error) {
	records := make(chan dataset.Record)
	errs := make(chan error, 1)
	go func() {
		var doc recordDoc
		var err error
		iter := s.recordsCollection().Find(bson.M{}).Sort("$natural").Iter()
		defer iter.Close()
		for err == nil && iter.Next(&doc) {
			if len(doc.Label) != 1 {
				err = fmt.Errorf("record %q: label %q is not a single byte", doc.ID, doc.Label)
				break
			}
			r := dataset.NewRecord(doc.ID, doc.Label[0], doc.Features)
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case records <- r:
			}
		}
		if err == nil {
			err = iter.Err()
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(records)
	}()
	return records, errs
}

/*
ReadDataset takes a context and returns the dataset built from every
record on the records collection, or an error if the records cannot be
streamed or violate the dataset invariants.
*/
func (s *Store) ReadDataset(ctx context.Context) (*dataset.Dataset, error) {
	builder := dataset.NewBuilder()
	records, errs := s.Read(ctx)
	for r := range records {
		if err := builder.Add(r.ID(), r.Label(), r.Features()); err != nil {
			for range records {
			}
			return nil, fmt.Errorf("reading records from mongodb: %v", err)
		}
	}
	if err := <-errs; err != nil {
		return nil, fmt.Errorf("reading records from mongodb: %v", err)
	}
	ds, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building dataset from mongodb records: %v", err)
	}
	return ds, nil
}

func (s *Store) recordsCollection() *mgo.Collection {
	return s.session.DB("").C(recordsCollectionName)
}
