package huffcodec

import (
	"fmt"
	"sort"
)

// Codec bundles a code table with the frequency table it was built from, and
// encodes and decodes text with it.
type Codec struct {
	name  string
	freq  *FrequencyTable
	table *CodeTable
	enc   Encoder
	dec   Decoder
}

// Option configures NewCodec.
type Option func(*codecOptions)

type codecOptions struct {
	name    string
	fill    bool
	workers int
}

// WithName sets the display name of the Codec.
func WithName(name string) Option {
	return func(o *codecOptions) {
		o.name = name
	}
}

// WithWorkers sets the number of goroutines used to count symbols.
func WithWorkers(n int) Option {
	return func(o *codecOptions) {
		o.workers = n
	}
}

// WithoutFill restricts the code to the symbols that occur in the text.  By
// default every symbol of PrintableAlphabet also receives a code.
func WithoutFill() Option {
	return func(o *codecOptions) {
		o.fill = false
	}
}

// NewCodec builds a Codec from a sample text: it computes the frequencies of
// the text's symbols, builds a Huffman tree from them, and derives a code for
// every symbol of the frequency table.
func NewCodec(text string, opts ...Option) (*Codec, error) {
	o := codecOptions{fill: true}
	for _, opt := range opts {
		opt(&o)
	}

	freq, err := ComputeFrequenciesWith(text, FrequencyOptions{Fill: o.fill, Workers: o.workers})
	if err != nil {
		return nil, err
	}

	tree, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}

	table, err := DeriveCodeTable(tree, freq.Symbols())
	if err != nil {
		return nil, err
	}

	return newCodec(o.name, freq, table), nil
}

// LoadCodec builds a Codec from a persisted record.  The record's code
// mappings are used as they are; no tree is built.
func LoadCodec(saved SavedTable) (*Codec, error) {
	table, err := LoadCodeTable(saved.Codes, saved.Symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to load code table %q: %w", saved.Name, err)
	}

	var freq *FrequencyTable
	if len(saved.Weights) != 0 {
		weights := make([]Weight, 0, len(saved.Weights))
		for symbol, percent := range saved.Weights {
			weights = append(weights, Weight{Symbol: symbol, Percent: percent})
		}
		sort.Slice(weights, func(i, j int) bool { return weights[i].Symbol < weights[j].Symbol })

		freq, err = NewFrequencyTable(weights)
		if err != nil {
			return nil, fmt.Errorf("failed to load frequency table %q: %w", saved.Name, err)
		}
	}

	return newCodec(saved.Name, freq, table), nil
}

func newCodec(name string, freq *FrequencyTable, table *CodeTable) *Codec {
	c := &Codec{name: name, freq: freq, table: table}
	c.enc.Init(table)
	c.dec.Init(table)
	return c
}

// Name returns the display name of this Codec.
func (c *Codec) Name() string {
	return c.name
}

// SetName changes the display name of this Codec.
func (c *Codec) SetName(name string) {
	c.name = name
}

// Frequencies returns the frequency table of this Codec.  It is nil for a
// Codec loaded from a record without weights.
func (c *Codec) Frequencies() *FrequencyTable {
	return c.freq
}

// Table returns the code table of this Codec.
func (c *Codec) Table() *CodeTable {
	return c.table
}

// Encoder returns the Encoder of this Codec.
func (c *Codec) Encoder() Encoder {
	return c.enc
}

// Decoder returns the Decoder of this Codec.
func (c *Codec) Decoder() Decoder {
	return c.dec
}

// Encode encodes text into packed bytes with no framing.  See Encoder.Encode.
func (c *Codec) Encode(text string) ([]byte, error) {
	return c.enc.Encode(text)
}

// Decode decodes packed bytes with no framing.  See Decoder.Decode.
func (c *Codec) Decode(packed []byte) (string, error) {
	return c.dec.Decode(packed)
}

// Compress encodes text into a self-delimiting frame.  See
// Encoder.EncodeFrame.
func (c *Codec) Compress(text string) ([]byte, error) {
	return c.enc.EncodeFrame(text)
}

// Extract decodes a frame produced by Compress.  See Decoder.DecodeFrame.
func (c *Codec) Extract(data []byte) (string, error) {
	return c.dec.DecodeFrame(data)
}

// Save returns the persisted record of this Codec.
func (c *Codec) Save() SavedTable {
	saved := SavedTable{
		Name:    c.name,
		Codes:   c.table.Codes(),
		Symbols: c.table.Inverse(),
	}
	if c.freq != nil {
		saved.Weights = c.freq.Map()
	}
	return saved
}
