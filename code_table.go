package huffcodec

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable holds a prefix code as two mutually inverse mappings: Symbol to
// Code, and Code to Symbol.
type CodeTable struct {
	codes   map[Symbol]Code
	symbols map[Code]Symbol
	minSize int
	maxSize int
}

// DeriveCodeTable walks the tree once for each symbol of the alphabet and
// records its root-to-leaf path.  If alphabet is nil, every leaf of the tree
// is included.
//
// Returns ErrUnknownSymbol if a symbol of the alphabet is not a leaf of the
// tree.
//
func DeriveCodeTable(t *Tree, alphabet []Symbol) (*CodeTable, error) {
	if alphabet == nil {
		alphabet = make([]Symbol, 0, t.NumLeaves())
		for id := NodeID(0); int(id) < t.Len(); id++ {
			if node := t.Node(id); node.Kind == LeafNode {
				alphabet = append(alphabet, node.Symbol)
			}
		}
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrEmptyInput)
	}

	ct := &CodeTable{
		codes:   make(map[Symbol]Code, len(alphabet)),
		symbols: make(map[Code]Symbol, len(alphabet)),
	}
	for _, symbol := range alphabet {
		if _, found := ct.codes[symbol]; found {
			continue
		}
		hc, err := t.Path(symbol)
		if err != nil {
			return nil, err
		}
		ct.add(symbol, hc)
	}
	return ct, nil
}

// LoadCodeTable builds a CodeTable from a pair of ready-made mappings, such as
// those of a SavedTable, without building a tree.  The mappings must be exact
// inverses of each other and must form a prefix code; the only code allowed
// to be empty is that of a single-symbol table.
//
// Returns ErrInvalidEncoding if any of these conditions does not hold.
//
func LoadCodeTable(codes map[Symbol]Code, symbols map[Code]Symbol) (*CodeTable, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: empty code table", ErrInvalidEncoding)
	}
	if len(codes) != len(symbols) {
		return nil, fmt.Errorf("%w: %d codes but %d inverse entries", ErrInvalidEncoding, len(codes), len(symbols))
	}

	ct := &CodeTable{
		codes:   make(map[Symbol]Code, len(codes)),
		symbols: make(map[Code]Symbol, len(codes)),
	}
	for symbol, hc := range codes {
		if symbol < 0 {
			return nil, fmt.Errorf("%w: negative symbol %d", ErrInvalidEncoding, symbol)
		}
		if !hc.Valid() {
			return nil, fmt.Errorf("%w: code %s for %s is not a bit string", ErrInvalidEncoding, hc, symbol)
		}
		if hc.Size() == 0 && len(codes) > 1 {
			return nil, fmt.Errorf("%w: empty code for %s in a table of %d symbols", ErrInvalidEncoding, symbol, len(codes))
		}
		if inverse, found := symbols[hc]; !found || inverse != symbol {
			return nil, fmt.Errorf("%w: code %s for %s has no matching inverse entry", ErrInvalidEncoding, hc, symbol)
		}
		ct.add(symbol, hc)
	}

	if conflict, prefix, found := ct.findPrefix(); found {
		return nil, fmt.Errorf("%w: code %s is a prefix of code %s", ErrInvalidEncoding, prefix, conflict)
	}
	return ct, nil
}

// Len returns the number of symbols in this table.
func (ct *CodeTable) Len() int {
	return len(ct.codes)
}

// IsSingleton returns true iff this table has exactly one symbol.
func (ct *CodeTable) IsSingleton() bool {
	return len(ct.codes) == 1
}

// Code returns the Code for the given Symbol.
func (ct *CodeTable) Code(symbol Symbol) (Code, bool) {
	hc, found := ct.codes[symbol]
	return hc, found
}

// Symbol returns the Symbol for the given Code, or InvalidSymbol.
func (ct *CodeTable) Symbol(hc Code) Symbol {
	symbol, found := ct.symbols[hc]
	if !found {
		return InvalidSymbol
	}
	return symbol
}

// MinSize is the bit length of the shortest legal code.
func (ct *CodeTable) MinSize() int {
	return ct.minSize
}

// MaxSize is the bit length of the longest legal code.
func (ct *CodeTable) MaxSize() int {
	return ct.maxSize
}

// Symbols returns the table's symbols in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ct.codes))
	for symbol := range ct.codes {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Codes returns a copy of the Symbol to Code mapping.
func (ct *CodeTable) Codes() map[Symbol]Code {
	out := make(map[Symbol]Code, len(ct.codes))
	for symbol, hc := range ct.codes {
		out[symbol] = hc
	}
	return out
}

// Inverse returns a copy of the Code to Symbol mapping.
func (ct *CodeTable) Inverse() map[Code]Symbol {
	out := make(map[Code]Symbol, len(ct.symbols))
	for hc, symbol := range ct.symbols {
		out[hc] = symbol
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer, one line per symbol in ascending symbol order.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tCode(%s) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short description of this table.
func (ct *CodeTable) String() string {
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", len(ct.codes), ct.minSize, ct.maxSize)
}

func (ct *CodeTable) add(symbol Symbol, hc Code) {
	_, dup := ct.symbols[hc]
	assert.Assertf(!dup, "code %s assigned twice", hc)

	size := hc.Size()
	if len(ct.codes) == 0 {
		ct.minSize, ct.maxSize = size, size
	} else if size < ct.minSize {
		ct.minSize = size
	} else if size > ct.maxSize {
		ct.maxSize = size
	}
	ct.codes[symbol] = hc
	ct.symbols[hc] = symbol
}

// findPrefix reports a pair of codes where one is a prefix of the other.
// Sorted lexicographically, a code is immediately followed by any code it
// is a prefix of, so comparing neighbours is enough.
func (ct *CodeTable) findPrefix() (conflict Code, prefix Code, found bool) {
	sorted := make([]Code, 0, len(ct.symbols))
	for hc := range ct.symbols {
		sorted = append(sorted, hc)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].HasPrefix(sorted[i-1]) {
			return sorted[i], sorted[i-1], true
		}
	}
	return "", "", false
}
