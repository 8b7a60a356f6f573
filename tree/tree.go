/*
Package tree provides the decision-tree nodes grown during induction,
the accuracy evaluation of a tree against labeled records and a
human-readable tree rendering.
*/
package tree

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/nampas/decisiontree/dataset"
)

// ErrNoTestRecords is returned by Accuracy when it is given an empty
// slice of test records, for which accuracy is undefined.
var ErrNoTestRecords = errors.New("cannot compute accuracy without test records")

/*
NotUniform is the zero uniform value of a node holding records of both
labels: such a node is not a leaf. It doubles as the majority value of a
node whose label counts are exactly tied.
*/
const NotUniform byte = 0

/*
Node is a node of a decision tree. It references a subset of the
training records (shared, never copied), the entropy of that subset, the
feature index it splits on (meaningful only for internal nodes) and the
feature value that selects it from its parent's split (NotUniform for
the root). Children are kept in the dataset's feature-value order, one
per value, empty subsets included. Parent is a non-owning back-reference
used only for upward majority-label lookup; ownership runs strictly from
the root down.
*/
type Node struct {
	// The subset of records this node was built over.
	Data []dataset.Record
	// The binary entropy of Data, computed on construction.
	Entropy float64
	// The index of the feature this node splits on, if internal.
	SplitIndex int
	// The feature value this node represents relative to its
	// parent's split. NotUniform for the root.
	FeatureValue byte
	// The parent of the node, nil for the root.
	Parent *Node
	// The nodes directly under this node, in feature-value order.
	Children []*Node

	uniform  byte
	majority byte
	labels   [2]byte
}

/*
NewNode takes a subset of records, the feature value the node represents
relative to its parent's split, the parent node (nil for the root), the
dataset's label pair and a random source, and returns a node over the
subset with its entropy, uniformity and majority label resolved.

A subset holding both labels makes a non-uniform node; a subset holding
one label makes a leaf with that label. An empty subset makes a leaf
labeled with the parent's majority label, or with a random label for an
empty root. The random source must not be nil.
*/
func NewNode(data []dataset.Record, value byte, parent *Node, labels [2]byte, rng *rand.Rand) *Node {
	n := &Node{
		Data:         data,
		Entropy:      dataset.Entropy(data, labels[0]),
		FeatureValue: value,
		Parent:       parent,
		labels:       labels,
	}
	count0, count1 := n.countLabels()
	switch {
	case count0 > count1:
		n.majority = labels[0]
	case count1 > count0:
		n.majority = labels[1]
	}
	switch {
	case count0 > 0 && count1 > 0:
		n.uniform = NotUniform
	case count0 > 0:
		n.uniform = labels[0]
	case count1 > 0:
		n.uniform = labels[1]
	case parent != nil:
		n.uniform = parent.MajorityLabel(rng)
	default:
		n.uniform = randomLabel(labels, rng)
	}
	return n
}

/*
IsLeaf returns whether the node is a leaf for evaluation and splitting
purposes: either its records were uniformly labeled on construction, or
pruning forced a uniform value onto it.
*/
func (n *Node) IsLeaf() bool {
	return n.uniform != NotUniform
}

// UniformVal returns the label this node resolves to as a leaf, or
// NotUniform if the node is internal.
func (n *Node) UniformVal() byte {
	return n.uniform
}

/*
SetUniformVal sets the node's uniform value. Setting a label collapses
the node into a leaf without discarding its children; setting NotUniform
reverts the node to an internal one. The pruning search relies on this
transition being reversible.
*/
func (n *Node) SetUniformVal(v byte) {
	n.uniform = v
}

// ForceLeaf collapses the node into a leaf labeled with its majority
// label, resolving ties through MajorityLabel.
func (n *Node) ForceLeaf(rng *rand.Rand) {
	n.uniform = n.MajorityLabel(rng)
}

/*
MajorityLabel returns the more frequent label among the node's records.
When the counts are exactly tied it walks up to the closest ancestor
with a majority, and when the root is reached still tied it picks a
label uniformly at random. The walk never descends and never mutates
the tree.
*/
func (n *Node) MajorityLabel(rng *rand.Rand) byte {
	if n.majority != NotUniform {
		return n.majority
	}
	if n.Parent == nil {
		return randomLabel(n.labels, rng)
	}
	return n.Parent.MajorityLabel(rng)
}

func (n *Node) countLabels() (int, int) {
	var count0, count1 int
	for _, r := range n.Data {
		if r.Label() == n.labels[0] {
			count0++
		} else {
			count1++
		}
	}
	return count0, count1
}

func randomLabel(labels [2]byte, rng *rand.Rand) byte {
	return labels[rng.Intn(2)]
}

/*
Tree represents an induced decision tree: the root node of a strict
ownership hierarchy of nodes.
*/
type Tree struct {
	Root *Node
}

// New returns a Tree rooted at the given node.
func New(root *Node) *Tree {
	return &Tree{Root: root}
}

/*
Classify takes a record and returns the label the tree assigns to it:
the uniform value of the leaf reached by following, at every internal
node, the child whose feature value equals the record's value at the
node's split index. An error is returned if no child matches, which
cannot happen for records drawn from the dataset the tree was grown
against (induction creates one child per dataset feature value).
*/
func (t *Tree) Classify(r dataset.Record) (byte, error) {
	n := t.Root
	for !n.IsLeaf() {
		v := r.Feature(n.SplitIndex)
		var next *Node
		for _, child := range n.Children {
			if child.FeatureValue == v {
				next = child
				break
			}
		}
		if next == nil {
			return 0, fmt.Errorf("classifying record %q: value %q for feature %d is not covered by any branch", r.ID(), v, n.SplitIndex)
		}
		n = next
	}
	return n.UniformVal(), nil
}

/*
Accuracy takes a slice of test records and returns the percentage of
them, in [0, 100], whose label the tree predicts correctly. It returns
ErrNoTestRecords when the slice is empty.
*/
func (t *Tree) Accuracy(records []dataset.Record) (float64, error) {
	if len(records) == 0 {
		return 0.0, ErrNoTestRecords
	}
	var matches int
	for _, r := range records {
		label, err := t.Classify(r)
		if err != nil {
			return 0.0, err
		}
		if label == r.Label() {
			matches++
		}
	}
	return float64(matches) * 100.0 / float64(len(records)), nil
}

/*
String renders the tree depth-first, one node per line, each child
indented two spaces deeper than its parent. A line consists of the
feature value that selects the node from its parent's split (blank for
the root), the feature the node splits on as F<index> or, for a leaf,
its label, and the number of records at the node. Leaves, forced ones
included, end their branch: any children retained by pruning are not
rendered.
*/
func (t *Tree) String() string {
	var sb strings.Builder
	t.Root.render(&sb, 0)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	value := n.FeatureValue
	if value == NotUniform {
		value = ' '
	}
	if n.IsLeaf() {
		fmt.Fprintf(sb, "%c %c (%d records)\n", value, n.UniformVal(), len(n.Data))
		return
	}
	fmt.Fprintf(sb, "%c F%d (%d records)\n", value, n.SplitIndex, len(n.Data))
	for _, child := range n.Children {
		child.render(sb, depth+1)
	}
}
