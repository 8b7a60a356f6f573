/*
Package pgadapter provides a sqldataset.Adapter backed by a PostgreSQL
database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"

	// Import of pq driver
	_ "github.com/lib/pq"

	"github.com/nampas/decisiontree/dataset"
	"github.com/nampas/decisiontree/dataset/sqldataset"
)

const recordsTableCreateStmt = `CREATE TABLE IF NOT EXISTS records (
	seq SERIAL PRIMARY KEY,
	id TEXT UNIQUE NOT NULL,
	label TEXT NOT NULL,
	features TEXT NOT NULL)`

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection URL and returns an Adapter that works
on the URL's database or an error if the connection cannot be opened.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) CreateRecordsTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, recordsTableCreateStmt)
	if err != nil {
		return fmt.Errorf("ensuring records table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, records []dataset.Record) (int, error) {
	insertStmt, err := a.db.PrepareContext(ctx, "INSERT INTO records (id, label, features) VALUES ($1, $2, $3)")
	if err != nil {
		return 0, fmt.Errorf("preparing record insertion statement: %v", err)
	}
	defer insertStmt.Close()
	for n, r := range records {
		_, err = insertStmt.ExecContext(ctx, r.ID(), string(r.Label()), r.Features())
		if err != nil {
			return n, fmt.Errorf("inserting record %q: %v", r.ID(), err)
		}
	}
	return len(records), nil
}

func (a *adapter) IterateOnRecords(ctx context.Context, lambda func(int, dataset.Record) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, "SELECT id, label, features FROM records ORDER BY seq")
	if err != nil {
		return fmt.Errorf("querying records: %v", err)
	}
	defer rows.Close()
	for n := 0; rows.Next(); n++ {
		var id, label, features string
		err = rows.Scan(&id, &label, &features)
		if err != nil {
			return fmt.Errorf("scanning record %d: %v", n, err)
		}
		if len(label) != 1 {
			return fmt.Errorf("record %q: label %q is not a single byte", id, label)
		}
		ok, err := lambda(n, dataset.NewRecord(id, label[0], features))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}
