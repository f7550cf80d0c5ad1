package huffcodec

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildTree(t *testing.T) {
	freq, err := NewFrequencyTable([]Weight{
		{'a', 5},
		{'b', 9},
		{'c', 12},
		{'d', 13},
		{'e', 16},
		{'f', 45},
	})
	if err != nil {
		t.Fatalf("NewFrequencyTable failed: %v", err)
	}

	tree, err := BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tInner = 100.0000\n",
		"\t\tLeaf('f') = 45.0000\n",
		"\t\tInner = 55.0000\n",
		"\t\t\tInner = 25.0000\n",
		"\t\t\t\tLeaf('c') = 12.0000\n",
		"\t\t\t\tLeaf('d') = 13.0000\n",
		"\t\t\tInner = 30.0000\n",
		"\t\t\t\tInner = 14.0000\n",
		"\t\t\t\t\tLeaf('a') = 5.0000\n",
		"\t\t\t\t\tLeaf('b') = 9.0000\n",
		"\t\t\t\tLeaf('e') = 16.0000\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if tree.Len() != 11 || tree.NumLeaves() != 6 {
		t.Errorf("expected 11 nodes and 6 leaves, got %d and %d", tree.Len(), tree.NumLeaves())
	}

	root := tree.Node(tree.Root())
	if root.Kind != InnerNode || root.Side != NoSide || root.Parent != NoNode {
		t.Errorf("unexpected root %+v", root)
	}
	for id := NodeID(0); int(id) < tree.Len(); id++ {
		node := tree.Node(id)
		if node.Kind != InnerNode {
			continue
		}
		first, second := tree.Node(node.Children[0]), tree.Node(node.Children[1])
		if first.Side != FirstSide || second.Side != SecondSide {
			t.Errorf("node %d: children have sides %d and %d", id, first.Side, second.Side)
		}
		if node.Weight != first.Weight+second.Weight {
			t.Errorf("node %d: weight %v is not %v + %v", id, node.Weight, first.Weight, second.Weight)
		}
	}
}

func TestBuildTree_TieBreak(t *testing.T) {
	// b and c tie at 25; the node merged from them ties with a at 50 and is
	// placed after it.
	freq, err := ComputeFrequencies("aabc", false)
	if err != nil {
		t.Fatalf("ComputeFrequencies failed: %v", err)
	}
	tree, err := BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	expect := map[Symbol]Code{'a': "0", 'b': "10", 'c': "11"}
	for symbol, hc := range expect {
		actual, err := tree.Path(symbol)
		if err != nil {
			t.Fatalf("Path(%s) failed: %v", symbol, err)
		}
		if actual != hc {
			t.Errorf("Path(%s): expected %s, got %s", symbol, hc, actual)
		}
	}

	_, err = tree.Path('z')
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestBuildTree_Singleton(t *testing.T) {
	freq, err := ComputeFrequencies("aaa", false)
	if err != nil {
		t.Fatalf("ComputeFrequencies failed: %v", err)
	}
	tree, err := BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	if !tree.IsSingleton() {
		t.Errorf("expected a singleton tree")
	}
	if root := tree.Node(tree.Root()); root.Kind != LeafNode || root.Symbol != 'a' {
		t.Errorf("expected a leaf root for 'a', got %+v", root)
	}
	if hc, err := tree.Path('a'); err != nil || hc != "" {
		t.Errorf("expected an empty path, got %s, %v", hc, err)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	_, err := BuildTree(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
