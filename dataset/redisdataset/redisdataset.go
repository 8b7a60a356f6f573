/*
Package redisdataset reads and writes dataset records on a redis list.
Each list entry holds one record encoded as its tab-delimited line, so
the list is an ordered dataset file living in redis.
*/
package redisdataset

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/redis.v5"

	"github.com/nampas/decisiontree/dataset"
)

// readChunkSize is the number of list entries fetched per LRANGE call.
const readChunkSize = 128

/*
Store reads and writes records on a redis list under a fixed key.
*/
type Store struct {
	rc  *redis.Client
	key string
}

// New takes a redis client and the key of the list holding the records
// and returns a Store over them.
func New(rc *redis.Client, key string) *Store {
	return &Store{rc, key}
}

/*
Write takes a context and a slice of records and appends them, in
order, to the redis list. It returns the number of records written and
an error if the append fails.
*/
func (s *Store) Write(ctx context.Context, records []dataset.Record) (int, error) {
	entries := make([]interface{}, 0, len(records))
	for _, r := range records {
		entries = append(entries, encode(r))
	}
	_, err := s.rc.RPush(s.key, entries...).Result()
	if err != nil {
		return 0, fmt.Errorf("appending records to redis list %q: %v", s.key, err)
	}
	return len(records), nil
}

/*
ReadByRecord takes a context and a lambda function on an integer and a
dataset.Record and calls the lambda with every record on the list, in
order, and its index. The lambda returning false stops the read, an
error aborts it. Records are fetched in chunks to bound round-trips.
*/
func (s *Store) ReadByRecord(ctx context.Context, lambda func(int, dataset.Record) (bool, error)) error {
	for offset := 0; ; offset += readChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := s.rc.LRange(s.key, int64(offset), int64(offset+readChunkSize-1)).Result()
		if err != nil {
			return fmt.Errorf("reading redis list %q at offset %d: %v", s.key, offset, err)
		}
		for i, entry := range entries {
			r, err := decode(entry)
			if err != nil {
				return fmt.Errorf("decoding entry %d of redis list %q: %v", offset+i, s.key, err)
			}
			ok, err := lambda(offset+i, r)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		if len(entries) < readChunkSize {
			return nil
		}
	}
}

/*
ReadDataset takes a context and returns the dataset built from every
record on the list, or an error if the list cannot be read or its
records violate the dataset invariants.
*/
func (s *Store) ReadDataset(ctx context.Context) (*dataset.Dataset, error) {
	builder := dataset.NewBuilder()
	err := s.ReadByRecord(ctx, func(_ int, r dataset.Record) (bool, error) {
		return true, builder.Add(r.ID(), r.Label(), r.Features())
	})
	if err != nil {
		return nil, fmt.Errorf("reading records from redis: %v", err)
	}
	ds, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building dataset from redis records: %v", err)
	}
	return ds, nil
}

func encode(r dataset.Record) string {
	return fmt.Sprintf("%s\t%c\t%s", r.ID(), r.Label(), r.Features())
}

func decode(entry string) (dataset.Record, error) {
	fields := strings.Split(entry, "\t")
	if len(fields) != 3 {
		return dataset.Record{}, fmt.Errorf("got %d tab-delimited fields, want 3", len(fields))
	}
	if len(fields[1]) != 1 {
		return dataset.Record{}, fmt.Errorf("label %q is not a single byte", fields[1])
	}
	return dataset.NewRecord(fields[0], fields[1][0], fields[2]), nil
}
