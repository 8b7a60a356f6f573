package decisiontree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nampas/decisiontree/dataset"
)

func TestSplitTrainTune(t *testing.T) {
	records := make([]dataset.Record, 10)
	for i := range records {
		records[i] = dataset.NewRecord(fmt.Sprintf("n%d", i), 'a', "0")
	}
	train, tune := SplitTrainTune(records)
	require.Len(t, tune, 3)
	require.Len(t, train, 7)
	assert.Equal(t, "n0", tune[0].ID())
	assert.Equal(t, "n4", tune[1].ID())
	assert.Equal(t, "n8", tune[2].ID())
	assert.Equal(t, "n1", train[0].ID())
	assert.Equal(t, "n9", train[6].ID())
}

func TestSplitTrainTuneSingleRecord(t *testing.T) {
	records := []dataset.Record{dataset.NewRecord("n0", 'a', "0")}
	train, tune := SplitTrainTune(records)
	assert.Empty(t, train)
	assert.Len(t, tune, 1)
}

func TestCrossValidateSeparableDataset(t *testing.T) {
	ds := separableDataset(t)
	accuracy, err := CrossValidate(ds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, accuracy, 1e-9)
}

func TestCrossValidateIsDeterministicForASeed(t *testing.T) {
	ds := noisyDataset(t, 40)
	first, err := CrossValidate(ds, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	second, err := CrossValidate(ds, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCrossValidateAveragesOverAllRecords(t *testing.T) {
	ds := noisyDataset(t, 40)
	accuracy, err := CrossValidate(ds, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, accuracy, 0.0)
	assert.LessOrEqual(t, accuracy, 100.0)
}
