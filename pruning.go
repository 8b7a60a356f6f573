package decisiontree

import (
	"fmt"

	"github.com/nampas/decisiontree/dataset"
	"github.com/nampas/decisiontree/tree"
)

/*
Prune applies greedy reduced-error pruning to the given tree in place,
using the given tuning records. One iteration at a time, it searches the
whole tree for the single node whose collapse into a majority-label leaf
yields the highest tuning accuracy, applies that collapse if it strictly
improves on the current accuracy, and stops otherwise. Collapsed nodes
keep their children, so later iterations may still prune below them.

The loop runs at most once per internal node: each applied prune must
strictly raise the tuning accuracy, so pruning never leaves the tree
classifying the tuning records worse than before.
*/
func (g *Grower) Prune(t *tree.Tree, tuning []dataset.Record) error {
	best, err := t.Accuracy(tuning)
	if err != nil {
		return fmt.Errorf("pruning tree: %v", err)
	}
	for {
		node, accuracy, err := g.searchBestPrune(t, t.Root, tuning)
		if err != nil {
			return fmt.Errorf("pruning tree: %v", err)
		}
		if accuracy <= best {
			return nil
		}
		node.ForceLeaf(g.rng)
		best = accuracy
	}
}

/*
searchBestPrune walks the subtree under n depth-first, speculatively
collapsing every node in turn into a majority-label leaf, measuring the
whole-tree accuracy on the tuning records and restoring the node's
previous uniform value before moving on. It returns the node whose
collapse scored highest and that score; the local root is measured
before its children, and a descendant displaces it only by a strictly
higher score. The tree is left exactly as found.
*/
func (g *Grower) searchBestPrune(t *tree.Tree, n *tree.Node, tuning []dataset.Record) (*tree.Node, float64, error) {
	previous := n.UniformVal()
	n.ForceLeaf(g.rng)
	bestAccuracy, err := t.Accuracy(tuning)
	n.SetUniformVal(previous)
	if err != nil {
		return nil, 0.0, err
	}
	bestNode := n
	for _, child := range n.Children {
		node, accuracy, err := g.searchBestPrune(t, child, tuning)
		if err != nil {
			return nil, 0.0, err
		}
		if bestAccuracy < accuracy {
			bestNode = node
			bestAccuracy = accuracy
		}
	}
	return bestNode, bestAccuracy, nil
}
