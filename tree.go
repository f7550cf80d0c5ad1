package huffcodec

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeKind distinguishes leaves from inner nodes.
type NodeKind uint8

const (
	// LeafNode holds exactly one Symbol.
	LeafNode NodeKind = iota

	// InnerNode holds exactly two children.
	InnerNode
)

// Side records which child slot of its parent a node occupies.
type Side int8

const (
	// NoSide is the Side of the root node.
	NoSide Side = -1

	// FirstSide is the Side of an inner node's first child; it contributes
	// a 0 bit to the code.
	FirstSide Side = 0

	// SecondSide is the Side of an inner node's second child; it
	// contributes a 1 bit to the code.
	SecondSide Side = 1
)

// NodeID identifies a node within a Tree.
type NodeID int32

// NoNode is the NodeID of the root's parent.
const NoNode = NodeID(-1)

// Node is one node of a Tree.  Symbol is only meaningful for leaves and
// Children only for inner nodes.
type Node struct {
	Kind     NodeKind
	Symbol   Symbol
	Weight   float64
	Side     Side
	Parent   NodeID
	Children [2]NodeID
}

// Tree is a full binary prefix tree.  Nodes are stored in a single slice:
// leaves first, in frequency table order, followed by inner nodes in the
// order in which they were merged.  The root is therefore always the last
// node.
type Tree struct {
	nodes  []Node
	leaves map[Symbol]NodeID
}

// BuildTree builds a Huffman tree from the given frequency table by
// repeatedly merging the two lightest nodes.  Ties are broken by position:
// leaves in table order come first, and each merged node is placed after
// every existing node of equal weight.
//
// A table with a single symbol yields a tree whose root is a leaf.
//
func BuildTree(freq *FrequencyTable) (*Tree, error) {
	if freq == nil || freq.Len() == 0 {
		return nil, fmt.Errorf("%w: no symbols in frequency table", ErrEmptyInput)
	}

	numLeaves := freq.Len()
	t := &Tree{
		nodes:  make([]Node, 0, 2*numLeaves-1),
		leaves: make(map[Symbol]NodeID, numLeaves),
	}

	for _, w := range freq.list {
		id := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, Node{
			Kind:     LeafNode,
			Symbol:   w.Symbol,
			Weight:   w.Percent,
			Side:     NoSide,
			Parent:   NoNode,
			Children: [2]NodeID{NoNode, NoNode},
		})
		t.leaves[w.Symbol] = id
	}

	h := nodeHeap{tree: t, list: make([]NodeID, 0, numLeaves)}
	for id := range t.nodes {
		h.list = append(h.list, NodeID(id))
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)
		heap.Push(&h, t.merge(a, b))
	}

	root := heap.Pop(&h).(NodeID)
	assert.Assertf(root == t.Root(), "root %d is not the last node %d", root, t.Root())
	assert.Assertf(len(t.nodes) == 2*numLeaves-1, "tree has %d nodes for %d leaves", len(t.nodes), numLeaves)
	return t, nil
}

// Root returns the NodeID of the root node.
func (t *Tree) Root() NodeID {
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node with the given NodeID.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the total number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves in the tree.
func (t *Tree) NumLeaves() int {
	return len(t.leaves)
}

// IsSingleton returns true iff the root is itself a leaf.
func (t *Tree) IsSingleton() bool {
	return len(t.nodes) == 1
}

// Leaf returns the NodeID of the leaf holding the given symbol.
func (t *Tree) Leaf(symbol Symbol) (NodeID, bool) {
	id, found := t.leaves[symbol]
	return id, found
}

// Path returns the root-to-leaf bit sequence of the given symbol.  The path
// of a singleton tree's only symbol is the empty Code.
func (t *Tree) Path(symbol Symbol) (Code, error) {
	id, found := t.leaves[symbol]
	if !found {
		return "", fmt.Errorf("%w: %s is not in the tree", ErrUnknownSymbol, symbol)
	}

	var reversed []byte
	for node := t.nodes[id]; node.Parent != NoNode; node = t.nodes[node.Parent] {
		reversed = append(reversed, bitChar(node.Side == SecondSide))
	}

	out := make([]byte, len(reversed))
	for i, ch := range reversed {
		out[len(reversed)-1-i] = ch
	}
	return Code(out), nil
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one line per node in depth-first order.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")

	type stackItem struct {
		id    NodeID
		depth int
	}

	stack := []stackItem{{t.Root(), 1}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.id]
		for i := 0; i < top.depth; i++ {
			buf.WriteByte('\t')
		}
		switch node.Kind {
		case LeafNode:
			fmt.Fprintf(&buf, "Leaf(%s) = %.4f\n", node.Symbol, node.Weight)
		case InnerNode:
			fmt.Fprintf(&buf, "Inner = %.4f\n", node.Weight)
			stack = append(stack, stackItem{node.Children[SecondSide], top.depth + 1})
			stack = append(stack, stackItem{node.Children[FirstSide], top.depth + 1})
		}
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) merge(a, b NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes[a].Side = FirstSide
	t.nodes[a].Parent = id
	t.nodes[b].Side = SecondSide
	t.nodes[b].Parent = id
	t.nodes = append(t.nodes, Node{
		Kind:     InnerNode,
		Symbol:   InvalidSymbol,
		Weight:   t.nodes[a].Weight + t.nodes[b].Weight,
		Side:     NoSide,
		Parent:   NoNode,
		Children: [2]NodeID{a, b},
	})
	return id
}

// type nodeHeap {{{

// nodeHeap orders NodeIDs by (weight, NodeID).  Since NodeIDs are assigned in
// insertion order, this is a stable ordering by weight.
type nodeHeap struct {
	tree *Tree
	list []NodeID
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.nodes[a].Weight, h.tree.nodes[b].Weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
