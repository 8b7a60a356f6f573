/*
Package tsv reads and writes datasets in a tab-delimited text format,
one record per line:

	<identifier>\t<label>\t<feature-string>
*/
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nampas/decisiontree/dataset"
)

const fieldsPerLine = 3

/*
Read takes an io.Reader for a tab-delimited stream and returns the
dataset built from its lines or an error. Lines with a field count
other than three, or with a label longer than one byte, are malformed
and fail the whole read; so does any violation of the dataset
invariants (see dataset.Builder).
*/
func Read(reader io.Reader) (*dataset.Dataset, error) {
	builder := dataset.NewBuilder()
	err := ReadByRecord(reader, func(_ int, r dataset.Record) (bool, error) {
		return true, builder.Add(r.ID(), r.Label(), r.Features())
	})
	if err != nil {
		return nil, err
	}
	ds, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	return ds, nil
}

/*
ReadByRecord takes an io.Reader for a tab-delimited stream and a lambda
function on an integer and a dataset.Record. It parses the records from
the reader and for each calls the lambda with the record and its index.
If the lambda returns true it continues with the next record, otherwise
it stops. An error is returned if the stream cannot be read, a line is
malformed or the lambda returns an error.
*/
func ReadByRecord(reader io.Reader, lambda func(int, dataset.Record) (bool, error)) error {
	scanner := bufio.NewScanner(reader)
	for l := 1; scanner.Scan(); l++ {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != fieldsPerLine {
			return fmt.Errorf("parsing line %d: got %d tab-delimited fields, want %d", l, len(fields), fieldsPerLine)
		}
		if len(fields[1]) != 1 {
			return fmt.Errorf("parsing line %d: label %q is not a single byte", l, fields[1])
		}
		ok, err := lambda(l-1, dataset.NewRecord(fields[0], fields[1][0], fields[2]))
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		if !ok {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading lines: %v", err)
	}
	return nil
}

/*
ReadFromFilePath takes a filepath string, opens the file it points to
and uses Read to return the dataset read from it or an error. An empty
filepath reads from STDIN.
*/
func ReadFromFilePath(filepath string) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening dataset at %s: %v", filepath, err)
		}
		defer f.Close()
	}
	ds, err := Read(f)
	if err != nil {
		err = fmt.Errorf("parsing TSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
Write takes an io.Writer and a slice of records and writes them to the
writer in the tab-delimited line format, returning the number of
records written and an error if writing fails.
*/
func Write(writer io.Writer, records []dataset.Record) (int, error) {
	w := bufio.NewWriter(writer)
	for n, r := range records {
		if _, err := fmt.Fprintf(w, "%s\t%c\t%s\n", r.ID(), r.Label(), r.Features()); err != nil {
			return n, fmt.Errorf("writing record %q: %v", r.ID(), err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("flushing records: %v", err)
	}
	return len(records), nil
}
