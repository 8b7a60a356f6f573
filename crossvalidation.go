package decisiontree

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/nampas/decisiontree/dataset"
)

// tuneSetSpacing is the stride of the training/tuning split: every
// tuneSetSpacing-th record, by position, is held out for tuning.
const tuneSetSpacing = 4

/*
SplitTrainTune takes a slice of records and splits it, preserving order,
into a training slice and a tuning slice. Every fourth record starting
with the first goes to the tuning slice, the rest to the training slice.
*/
func SplitTrainTune(records []dataset.Record) (train, tune []dataset.Record) {
	for i, r := range records {
		if i%tuneSetSpacing == 0 {
			tune = append(tune, r)
		} else {
			train = append(train, r)
		}
	}
	return train, tune
}

/*
CrossValidate estimates the generalization accuracy of trees grown from
the given dataset by leave-one-out cross validation: for every record it
grows a tree from the remaining records (split into training and tuning
subsets with SplitTrainTune, the left-out index simply omitted), prunes
it on the tuning subset and classifies the left-out record, then returns
the average of the per-record accuracies as a percentage in [0, 100].

Folds are independent and run concurrently, each with its own tree and
its own random source derived from the given one. A nil random source is
replaced with a time-seeded one. An error is returned for datasets of
fewer than two records, for which no leave-one-out split exists.
*/
func CrossValidate(ds *dataset.Dataset, rng *rand.Rand) (float64, error) {
	records := ds.Records()
	if len(records) < 2 {
		return 0.0, fmt.Errorf("cross-validating: need at least 2 records, got %d", len(records))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	accuracies := make([]float64, len(records))
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	wg.Add(len(records))
	for i := range records {
		foldRng := rand.New(rand.NewSource(rng.Int63()))
		go func(i int, foldRng *rand.Rand) {
			accuracies[i], errs[i] = crossValidateFold(ds, i, foldRng)
			wg.Done()
		}(i, foldRng)
	}
	wg.Wait()
	var total float64
	for i := range records {
		if errs[i] != nil {
			return 0.0, fmt.Errorf("cross-validating record %d: %v", i, errs[i])
		}
		total += accuracies[i]
	}
	return total / float64(len(records)), nil
}

func crossValidateFold(ds *dataset.Dataset, leaveOut int, rng *rand.Rand) (float64, error) {
	records := ds.Records()
	rest := make([]dataset.Record, 0, len(records)-1)
	rest = append(rest, records[:leaveOut]...)
	rest = append(rest, records[leaveOut+1:]...)
	train, tune := SplitTrainTune(rest)
	g := New(ds, rng)
	t := g.Grow(train)
	if err := g.Prune(t, tune); err != nil {
		return 0.0, err
	}
	return t.Accuracy(records[leaveOut : leaveOut+1])
}
