package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/nampas/decisiontree"
	"github.com/nampas/decisiontree/dataset/yaml"
	"github.com/nampas/decisiontree/tree"
)

type trainCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	redisKey      string
	seed          int64
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a decision tree on a set of records",
		Long:  `Train a decision tree on a set of records, prune it against a held-out tuning subset and print the tree with its tuning accuracy.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			ds, err := readDataset(ctx, config.rootCmdConfig, config.dataInput, config.redisKey)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			var metadata *yaml.Metadata
			if config.metadataInput != "" {
				metadata, err = yaml.ReadMetadataFromFile(config.metadataInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				if err = metadata.Validate(ds); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
			}
			train, tune := decisiontree.SplitTrainTune(ds.Records())
			config.Logf("Training on %d records, tuning on %d, with %d features...", len(train), len(tune), ds.NumFeatures())
			g := decisiontree.New(ds, config.randSource())
			t := g.Grow(train)
			accuracy, err := t.Accuracy(tune)
			if err != nil {
				fmt.Fprintf(os.Stderr, "evaluating unpruned tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Unpruned tuning accuracy %.3f%%", accuracy)
			if err = g.Prune(t, tune); err != nil {
				fmt.Fprintf(os.Stderr, "pruning tree: %v\n", err)
				os.Exit(6)
			}
			accuracy, err = t.Accuracy(tune)
			if err != nil {
				fmt.Fprintf(os.Stderr, "evaluating pruned tree: %v\n", err)
				os.Exit(7)
			}
			if err = config.outputTree(t, metadata, accuracy); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input TSV file or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis URL with records to train on (defaults to STDIN, interpreted as TSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata naming the features and declaring the expected labels and values (optional)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the trained tree will be written (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.redisKey), "redis-key", "records", "key of the redis list holding the records when the input is a redis URL")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random source used to break ties (defaults to 0: seed from the current time)")
	return cmd
}

func (tcc *trainCmdConfig) randSource() *rand.Rand {
	if tcc.seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(tcc.seed))
}

func (tcc *trainCmdConfig) outputTree(t *tree.Tree, metadata *yaml.Metadata, accuracy float64) error {
	var w io.Writer = os.Stdout
	if tcc.output != "" {
		f, err := os.Create(tcc.output)
		if err != nil {
			return fmt.Errorf("creating %s: %v", tcc.output, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := fmt.Fprint(w, t); err != nil {
		return fmt.Errorf("writing tree: %v", err)
	}
	if metadata != nil && len(metadata.Features) > 0 {
		for i := range metadata.Features {
			if _, err := fmt.Fprintf(w, "F%d: %s\n", i, metadata.FeatureName(i)); err != nil {
				return fmt.Errorf("writing feature legend: %v", err)
			}
		}
	}
	if _, err := fmt.Fprintf(w, "Tuning accuracy %.3f%%\n", accuracy); err != nil {
		return fmt.Errorf("writing accuracy: %v", err)
	}
	return nil
}
