package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type datasetCmdConfig struct {
	*rootCmdConfig
	dataInput      string
	output         string
	inputRedisKey  string
	outputRedisKey string
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Copy a set of records between backends",
		Long:  `Copy a set of records from one backend to another: TSV files, SQLite3 files, PostgreSQL databases, MongoDB collections and redis lists. The records are validated against the dataset invariants on the way.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			ds, err := readDataset(ctx, config.rootCmdConfig, config.dataInput, config.inputRedisKey)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			n, err := writeRecords(ctx, config.rootCmdConfig, config.output, config.outputRedisKey, ds.Records())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Done: %d records written", n)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input TSV file or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with records to copy (defaults to STDIN, interpreted as TSV)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to an output TSV file or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL to copy the records to (defaults to STDOUT, written as TSV)")
	cmd.PersistentFlags().StringVar(&(config.inputRedisKey), "redis-key", "records", "key of the redis list holding the records when the input is a redis URL")
	cmd.PersistentFlags().StringVar(&(config.outputRedisKey), "output-redis-key", "records", "key of the redis list to write the records to when the output is a redis URL")
	return cmd
}
