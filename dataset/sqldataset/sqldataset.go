/*
Package sqldataset reads and writes dataset records on a SQL database
through an Adapter that absorbs the engine-specific SQL. Records live
in a single records table, in insertion order; the table is the SQL
equivalent of a TSV file, not a queryable training structure.
*/
package sqldataset

import (
	"context"
	"fmt"

	"github.com/nampas/decisiontree/dataset"
)

/*
Adapter is an interface for access to a records table on a specific SQL
engine.

Its CreateRecordsTable method ensures the records table exists.

Its AddRecords method appends the given records to the table and
returns the number actually added and an error if not all could be.

Its IterateOnRecords method goes through the table's records in
insertion order calling the given lambda function with each record and
its position; the lambda returning false stops the iteration, an error
aborts it.
*/
type Adapter interface {
	CreateRecordsTable(ctx context.Context) error
	AddRecords(ctx context.Context, records []dataset.Record) (int, error)
	IterateOnRecords(ctx context.Context, lambda func(int, dataset.Record) (bool, error)) error
}

/*
Read takes a context and an Adapter and returns the dataset built from
every record on the adapter's table, or an error if the records cannot
be read or violate the dataset invariants.
*/
func Read(ctx context.Context, db Adapter) (*dataset.Dataset, error) {
	builder := dataset.NewBuilder()
	err := db.IterateOnRecords(ctx, func(_ int, r dataset.Record) (bool, error) {
		return true, builder.Add(r.ID(), r.Label(), r.Features())
	})
	if err != nil {
		return nil, fmt.Errorf("reading records: %v", err)
	}
	ds, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building dataset from records: %v", err)
	}
	return ds, nil
}

/*
Write takes a context, an Adapter and a slice of records, ensures the
records table exists and appends the records to it. It returns the
number of records written and an error if the table cannot be ensured
or not all records could be added.
*/
func Write(ctx context.Context, db Adapter, records []dataset.Record) (int, error) {
	err := db.CreateRecordsTable(ctx)
	if err != nil {
		return 0, fmt.Errorf("ensuring records table: %v", err)
	}
	n, err := db.AddRecords(ctx, records)
	if err != nil {
		return n, fmt.Errorf("writing records: %v", err)
	}
	return n, nil
}
