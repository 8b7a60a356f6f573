package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nampas/decisiontree/dataset"
)

var testLabels = [2]byte{'D', 'R'}

func testRecords() []dataset.Record {
	return []dataset.Record{
		dataset.NewRecord("v0", 'D', "ynny"),
		dataset.NewRecord("v1", 'D', "yyny"),
		dataset.NewRecord("v2", 'D', "ynyn"),
		dataset.NewRecord("v3", 'D', "yyyy"),
		dataset.NewRecord("v4", 'R', "nyny"),
		dataset.NewRecord("v5", 'R', "nnyn"),
		dataset.NewRecord("v6", 'R', "nyyn"),
		dataset.NewRecord("v7", 'R', "nnnn"),
	}
}

// testTree builds, by hand, the tree splitting testRecords on their
// first feature: a y branch uniformly labeled D and an n branch
// uniformly labeled R.
func testTree(rng *rand.Rand) *Tree {
	records := testRecords()
	root := NewNode(records, NotUniform, nil, testLabels, rng)
	root.SplitIndex = 0
	yBranch := NewNode(records[:4], 'y', root, testLabels, rng)
	nBranch := NewNode(records[4:], 'n', root, testLabels, rng)
	root.Children = append(root.Children, yBranch, nBranch)
	return New(root)
}

func TestNewNodeUniformity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	records := testRecords()

	mixed := NewNode(records, NotUniform, nil, testLabels, rng)
	assert.False(t, mixed.IsLeaf())
	assert.Equal(t, NotUniform, mixed.UniformVal())
	assert.InDelta(t, 1.0, mixed.Entropy, 1e-9)

	uniform := NewNode(records[:4], 'y', mixed, testLabels, rng)
	assert.True(t, uniform.IsLeaf())
	assert.Equal(t, byte('D'), uniform.UniformVal())
	assert.Equal(t, 0.0, uniform.Entropy)
}

func TestNewNodeEmptySubsetTakesParentMajority(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	parent := NewNode(testRecords()[:3], NotUniform, nil, testLabels, rng)
	empty := NewNode(nil, 'n', parent, testLabels, rng)
	assert.True(t, empty.IsLeaf())
	assert.Equal(t, byte('D'), empty.UniformVal())
}

func TestMajorityLabelTieWalksUpToAncestor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	records := testRecords()
	// 2 D against 3 R: the parent's majority is R.
	parent := NewNode(records[2:7], NotUniform, nil, testLabels, rng)
	// 1 D against 1 R: the child is tied.
	tied := NewNode(records[3:5], 'y', parent, testLabels, rng)
	assert.Equal(t, byte('R'), tied.MajorityLabel(rng))
}

func TestMajorityLabelTieAtRootIsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	root := NewNode(testRecords(), NotUniform, nil, testLabels, rng)
	label := root.MajorityLabel(rng)
	assert.Contains(t, []byte{'D', 'R'}, label)
}

func TestForceLeafIsReversible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := NewNode(testRecords()[2:7], NotUniform, nil, testLabels, rng)
	require.False(t, n.IsLeaf())
	n.ForceLeaf(rng)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, byte('R'), n.UniformVal())
	n.SetUniformVal(NotUniform)
	assert.False(t, n.IsLeaf())
}

func TestClassify(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	for _, r := range testRecords() {
		label, err := tr.Classify(r)
		require.NoError(t, err)
		assert.Equal(t, r.Label(), label, "record %s", r.ID())
	}
}

func TestClassifyUncoveredValueFails(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	_, err := tr.Classify(dataset.NewRecord("x0", 'D', "xyny"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x0"`)
}

func TestClassifyForcedLeafStopsDescent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	tr.Root.ForceLeaf(rng)
	require.Len(t, tr.Root.Children, 2)
	label, err := tr.Classify(dataset.NewRecord("x0", 'R', "nnnn"))
	require.NoError(t, err)
	assert.Equal(t, tr.Root.UniformVal(), label)
}

func TestAccuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	records := testRecords()

	accuracy, err := tr.Accuracy(records)
	require.NoError(t, err)
	assert.Equal(t, 100.0, accuracy)

	// Mislabel one of four test records.
	test := []dataset.Record{
		records[0],
		records[4],
		records[7],
		dataset.NewRecord("x0", 'R', "yyyy"),
	}
	accuracy, err = tr.Accuracy(test)
	require.NoError(t, err)
	assert.Equal(t, 75.0, accuracy)
}

func TestAccuracyWithoutRecordsFails(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	_, err := tr.Accuracy(nil)
	assert.Equal(t, ErrNoTestRecords, err)
}

func TestString(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	expected := " F0 (8 records)\n" +
		"  y D (4 records)\n" +
		"  n R (4 records)\n"
	assert.Equal(t, expected, tr.String())
}

func TestStringHidesChildrenOfForcedLeaves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := testTree(rng)
	tr.Root.SetUniformVal('D')
	assert.Equal(t, " D (8 records)\n", tr.String())
}
