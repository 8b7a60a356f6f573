package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"

	"github.com/nampas/decisiontree/dataset"
	"github.com/nampas/decisiontree/dataset/mongodataset"
	"github.com/nampas/decisiontree/dataset/redisdataset"
	"github.com/nampas/decisiontree/dataset/sqldataset"
	"github.com/nampas/decisiontree/dataset/sqldataset/pgadapter"
	"github.com/nampas/decisiontree/dataset/sqldataset/sqlite3adapter"
	"github.com/nampas/decisiontree/dataset/tsv"
)

/*
readDataset loads a dataset from the backend the input string points
to: a PostgreSQL connection URL, a MongoDB URL, a redis URL (records
read from the list under redisKey), a path to an SQLite3 (.db) file,
or a path to a TSV file ("" for STDIN).
*/
func readDataset(ctx context.Context, config *rootCmdConfig, input, redisKey string) (*dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		config.Logf("Creating PostgreSQL adapter for url %s to read records...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		return sqldataset.Read(ctx, adapter)
	case strings.HasPrefix(input, "mongodb://"):
		config.Logf("Dialing MongoDB at %s to read records...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongodb at %s: %v", input, err)
		}
		defer session.Close()
		return mongodataset.Open(session).ReadDataset(ctx)
	case strings.HasPrefix(input, "redis://"):
		config.Logf("Connecting to redis at %s to read records from list %q...", input, redisKey)
		rc, err := redisClient(input)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return redisdataset.New(rc, redisKey).ReadDataset(ctx)
	case strings.HasSuffix(input, ".db"):
		config.Logf("Creating SQLite3 adapter for file %s to read records...", input)
		adapter, err := sqlite3adapter.New(input, 0)
		if err != nil {
			return nil, err
		}
		return sqldataset.Read(ctx, adapter)
	default:
		if input == "" {
			config.Logf("Reading records from STDIN...")
		} else {
			config.Logf("Opening %s to read records...", input)
		}
		return tsv.ReadFromFilePath(input)
	}
}

/*
writeRecords writes records to the backend the output string points to,
resolved the same way as readDataset's input ("" writes TSV to STDOUT).
It returns the number of records written.
*/
func writeRecords(ctx context.Context, config *rootCmdConfig, output, redisKey string, records []dataset.Record) (int, error) {
	switch {
	case strings.HasPrefix(output, "postgresql://"):
		config.Logf("Creating PostgreSQL adapter for url %s to write records...", output)
		adapter, err := pgadapter.New(output)
		if err != nil {
			return 0, err
		}
		return sqldataset.Write(ctx, adapter, records)
	case strings.HasPrefix(output, "mongodb://"):
		config.Logf("Dialing MongoDB at %s to write records...", output)
		session, err := mgo.Dial(output)
		if err != nil {
			return 0, fmt.Errorf("connecting to mongodb at %s: %v", output, err)
		}
		defer session.Close()
		return mongodataset.Open(session).Write(ctx, records)
	case strings.HasPrefix(output, "redis://"):
		config.Logf("Connecting to redis at %s to write records to list %q...", output, redisKey)
		rc, err := redisClient(output)
		if err != nil {
			return 0, err
		}
		defer rc.Close()
		return redisdataset.New(rc, redisKey).Write(ctx, records)
	case strings.HasSuffix(output, ".db"):
		config.Logf("Creating SQLite3 adapter for file %s to write records...", output)
		adapter, err := sqlite3adapter.New(output, 0)
		if err != nil {
			return 0, err
		}
		return sqldataset.Write(ctx, adapter, records)
	case output == "":
		return tsv.Write(os.Stdout, records)
	default:
		f, err := os.Create(output)
		if err != nil {
			return 0, fmt.Errorf("creating %s: %v", output, err)
		}
		defer f.Close()
		return tsv.Write(f, records)
	}
}

/*
redisClient takes a redis URL of the form redis://[:password@]host:port[/db]
and returns a client connected to it or an error if the URL cannot be
parsed.
*/
func redisClient(rawurl string) (*redis.Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url %s: %v", rawurl, err)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			opts.Password = password
		}
	}
	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		db, err := strconv.Atoi(path)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url %s: db %q is not a number", rawurl, path)
		}
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}
