package huffcodec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum number of symbols for which counting is
// split across workers.
const parallelThreshold = 1 << 16

// Weight pairs a Symbol with its relative frequency, expressed as a percentage
// of the total number of symbols.
type Weight struct {
	Symbol  Symbol
	Percent float64
}

// FrequencyTable holds the weight of each symbol in an alphabet.  It is
// ordered by ascending weight; ties keep the order in which the symbols were
// first seen.  A FrequencyTable is immutable once built.
type FrequencyTable struct {
	list  []Weight
	index map[Symbol]int
}

// FrequencyOptions controls ComputeFrequenciesWith.
type FrequencyOptions struct {
	// Fill adds every symbol of PrintableAlphabet that does not occur in the
	// text, with a weight of 0.
	Fill bool

	// Workers is the number of goroutines used to count large texts.  Values
	// below 2 count sequentially.
	Workers int
}

// ComputeFrequencies computes the percentage of occurrence of each symbol in
// text.  If fill is true, the symbols of PrintableAlphabet that do not occur
// in text are added with weight 0.
//
// Returns ErrEmptyInput if text contains no symbols, and ErrInvalidEncoding
// if text is not valid UTF-8.
//
func ComputeFrequencies(text string, fill bool) (*FrequencyTable, error) {
	return ComputeFrequenciesWith(text, FrequencyOptions{Fill: fill})
}

// ComputeFrequenciesWith is like ComputeFrequencies, but takes the full set of
// options.  The result does not depend on opts.Workers.
func ComputeFrequenciesWith(text string, opts FrequencyOptions) (*FrequencyTable, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidEncoding)
	}

	symbols := symbolsOf(text)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols to count", ErrEmptyInput)
	}

	var tallies []tally
	if opts.Workers > 1 && len(symbols) >= parallelThreshold {
		var err error
		tallies, err = countParallel(symbols, opts.Workers)
		if err != nil {
			return nil, err
		}
	} else {
		tallies = countSerial(symbols, 0)
	}

	total := float64(len(symbols))
	list := make([]Weight, 0, len(tallies)+len(PrintableAlphabet))
	for _, t := range tallies {
		list = append(list, Weight{Symbol: t.symbol, Percent: float64(t.count) / total * 100})
	}

	ft := &FrequencyTable{list: list}
	ft.reindex()

	if opts.Fill {
		for _, ch := range PrintableAlphabet {
			if _, found := ft.index[Symbol(ch)]; !found {
				ft.index[Symbol(ch)] = len(ft.list)
				ft.list = append(ft.list, Weight{Symbol: Symbol(ch)})
			}
		}
	}

	ft.sort()
	return ft, nil
}

// NewFrequencyTable builds a FrequencyTable from explicit weights, such as
// those of a SavedTable.  The weights are ordered by ascending weight, with
// ties kept in the given order.
func NewFrequencyTable(weights []Weight) (*FrequencyTable, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrEmptyInput)
	}

	ft := &FrequencyTable{
		list:  make([]Weight, 0, len(weights)),
		index: make(map[Symbol]int, len(weights)),
	}
	for _, w := range weights {
		if w.Symbol < 0 {
			return nil, fmt.Errorf("%w: symbol %d is negative", ErrInvalidWeight, w.Symbol)
		}
		if math.IsNaN(w.Percent) || w.Percent < 0 {
			return nil, fmt.Errorf("%w: symbol %s has weight %v", ErrInvalidWeight, w.Symbol, w.Percent)
		}
		if _, found := ft.index[w.Symbol]; found {
			return nil, fmt.Errorf("%w: symbol %s appears twice", ErrInvalidWeight, w.Symbol)
		}
		ft.index[w.Symbol] = len(ft.list)
		ft.list = append(ft.list, w)
	}

	ft.sort()
	return ft, nil
}

// Len returns the number of symbols in this table.
func (ft *FrequencyTable) Len() int {
	return len(ft.list)
}

// Weights returns a copy of the table's entries, in table order.
func (ft *FrequencyTable) Weights() []Weight {
	out := make([]Weight, len(ft.list))
	copy(out, ft.list)
	return out
}

// Weight returns the weight of the given symbol.
func (ft *FrequencyTable) Weight(symbol Symbol) (float64, bool) {
	i, found := ft.index[symbol]
	if !found {
		return 0, false
	}
	return ft.list[i].Percent, true
}

// Symbols returns the table's symbols, in table order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, len(ft.list))
	for i, w := range ft.list {
		out[i] = w.Symbol
	}
	return out
}

// Map returns the table as a map from symbol to weight.
func (ft *FrequencyTable) Map() map[Symbol]float64 {
	out := make(map[Symbol]float64, len(ft.list))
	for _, w := range ft.list {
		out[w.Symbol] = w.Percent
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, item := range ft.list {
		fmt.Fprintf(&buf, "\tWeight(%s) = %.4f\n", item.Symbol, item.Percent)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (ft *FrequencyTable) sort() {
	sort.SliceStable(ft.list, func(i, j int) bool {
		return ft.list[i].Percent < ft.list[j].Percent
	})
	ft.reindex()
}

func (ft *FrequencyTable) reindex() {
	ft.index = make(map[Symbol]int, len(ft.list)+len(PrintableAlphabet))
	for i, w := range ft.list {
		ft.index[w.Symbol] = i
	}
}

// type tally {{{

// tally is the occurrence count of one symbol, along with the position at
// which it was first seen.
type tally struct {
	symbol Symbol
	count  int
	first  int
}

// countSerial counts symbols, returning tallies in first-seen order.  The
// offset is added to every first-seen position.
func countSerial(symbols []Symbol, offset int) []tally {
	var out []tally
	index := make(map[Symbol]int)
	for i, symbol := range symbols {
		if j, found := index[symbol]; found {
			out[j].count++
			continue
		}
		index[symbol] = len(out)
		out = append(out, tally{symbol: symbol, count: 1, first: offset + i})
	}
	return out
}

// countParallel splits symbols into one partition per worker, counts each
// partition concurrently, and merges the partial tallies.  A partition that
// is not counted in full fails the whole count.
func countParallel(symbols []Symbol, workers int) ([]tally, error) {
	chunk := (len(symbols) + workers - 1) / workers
	parts := make([][]tally, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		if lo >= len(symbols) {
			break
		}
		hi := min(lo+chunk, len(symbols))
		g.Go(func() error {
			part := countSerial(symbols[lo:hi], lo)
			if n := countOf(part); n != hi-lo {
				return fmt.Errorf("partition [%d, %d) counted %d symbols, expected %d", lo, hi, n, hi-lo)
			}
			parts[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count symbols: %w", err)
	}

	var out []tally
	index := make(map[Symbol]int)
	for _, part := range parts {
		for _, t := range part {
			if j, found := index[t.symbol]; found {
				out[j].count += t.count
				if t.first < out[j].first {
					out[j].first = t.first
				}
				continue
			}
			index[t.symbol] = len(out)
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].first < out[j].first
	})
	return out, nil
}

func countOf(tallies []tally) int {
	var n int
	for _, t := range tallies {
		n += t.count
	}
	return n
}

// }}}
