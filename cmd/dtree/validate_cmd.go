package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/nampas/decisiontree"
)

type validateCmdConfig struct {
	*rootCmdConfig
	dataInput string
	redisKey  string
	seed      int64
}

func validateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &validateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Estimate tree accuracy with leave-one-out cross validation",
		Long:  `Estimate the accuracy of trees trained on a set of records with leave-one-out cross validation: every record is classified once by a tree grown and pruned on the others, and the accuracy is the average over all records.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			ds, err := readDataset(ctx, config.rootCmdConfig, config.dataInput, config.redisKey)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			var rng *rand.Rand
			if config.seed != 0 {
				rng = rand.New(rand.NewSource(config.seed))
			}
			config.Logf("Cross-validating on %d records with %d features...", ds.Count(), ds.NumFeatures())
			accuracy, err := decisiontree.CrossValidate(ds, rng)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			fmt.Printf("Tree accuracy %.3f%%\n", accuracy)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input TSV file or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with records to validate on (defaults to STDIN, interpreted as TSV)")
	cmd.PersistentFlags().StringVar(&(config.redisKey), "redis-key", "records", "key of the redis list holding the records when the input is a redis URL")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random source used to break ties (defaults to 0: seed from the current time)")
	return cmd
}
