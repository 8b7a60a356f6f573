/*
Package decisiontree induces binary-classification decision trees from
datasets of categorical records, improves their generalization with
reduced-error pruning and estimates it with leave-one-out cross
validation.
*/
package decisiontree

import (
	"math/rand"
	"time"

	"github.com/nampas/decisiontree/dataset"
	"github.com/nampas/decisiontree/tree"
)

/*
Grower grows decision trees over subsets of a dataset and prunes them.
The dataset binds the closed feature-value set and the label pair every
grown tree splits and classifies against; the random source breaks the
ties described on tree.Node. A Grower is not safe for concurrent use:
grow each tree with its own Grower.
*/
type Grower struct {
	ds  *dataset.Dataset
	rng *rand.Rand
}

/*
New takes a dataset and a random source and returns a Grower for the
dataset. A nil random source is replaced with a time-seeded one; tests
pass a fixed-seed source to make tie-breaking deterministic.
*/
func New(ds *dataset.Dataset, rng *rand.Rand) *Grower {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Grower{ds, rng}
}

/*
Grow takes a slice of training records and returns the decision tree
induced from them by recursive top-down splitting on the feature with
the greatest information gain. Recursion stops at nodes whose records
are uniformly labeled and at nodes where no feature yields any gain,
which become leaves labeled with their majority label.
*/
func (g *Grower) Grow(records []dataset.Record) *tree.Tree {
	root := tree.NewNode(records, tree.NotUniform, nil, g.ds.Labels(), g.rng)
	g.grow(root)
	return tree.New(root)
}

func (g *Grower) grow(n *tree.Node) {
	if n.IsLeaf() {
		return
	}
	bestGain := -1.0
	var bestFeature int
	var bestBuckets [][]dataset.Record
	for i := 0; i < g.ds.NumFeatures(); i++ {
		buckets := g.partitionOnFeature(n.Data, i)
		gain := n.Entropy - g.weightedEntropy(buckets, len(n.Data))
		if gain > bestGain {
			bestGain = gain
			bestFeature = i
			bestBuckets = buckets
		}
	}
	// A best gain of zero means no remaining feature separates the
	// labels at all; splitting would recurse forever on identical
	// subsets. The node becomes a majority-label leaf instead.
	if bestGain == 0 {
		n.ForceLeaf(g.rng)
		return
	}
	n.SplitIndex = bestFeature
	values := g.ds.FeatureValues()
	for vi, bucket := range bestBuckets {
		n.Children = append(n.Children, tree.NewNode(bucket, values[vi], n, g.ds.Labels(), g.rng))
	}
	for _, child := range n.Children {
		g.grow(child)
	}
}

// partitionOnFeature splits records into one bucket per dataset feature
// value, in the dataset's value order. Buckets for values absent from
// the records stay empty rather than being dropped: every split creates
// one branch per value.
func (g *Grower) partitionOnFeature(records []dataset.Record, featureIndex int) [][]dataset.Record {
	values := g.ds.FeatureValues()
	indexes := make(map[byte]int, len(values))
	for vi, v := range values {
		indexes[v] = vi
	}
	buckets := make([][]dataset.Record, len(values))
	for _, r := range records {
		vi := indexes[r.Feature(featureIndex)]
		buckets[vi] = append(buckets[vi], r)
	}
	return buckets
}

func (g *Grower) weightedEntropy(buckets [][]dataset.Record, total int) float64 {
	label0 := g.ds.Labels()[0]
	var result float64
	for _, bucket := range buckets {
		result += float64(len(bucket)) / float64(total) * dataset.Entropy(bucket, label0)
	}
	return result
}
