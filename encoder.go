package huffcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// FrameHeaderSize is the size of the header that precedes the packed bits in
// a frame: a 4-byte big-endian symbol count followed by a 4-byte big-endian
// bit length.
const FrameHeaderSize = 8

// MaxFrameSymbols is the largest symbol count a frame may declare.
const MaxFrameSymbols = 1 << 26

// Encoder implements an encoder for a CodeTable.
type Encoder struct {
	table *CodeTable
}

// Init initializes this Encoder to encode with the given table.
func (e *Encoder) Init(table *CodeTable) {
	assert.Assertf(table != nil, "Encoder.Init called with a nil table")
	*e = Encoder{table: table}
}

// Table returns the table this Encoder encodes with.
func (e Encoder) Table() *CodeTable {
	return e.table
}

// Encode encodes text into packed bytes.  Codes are concatenated in input
// order and packed most significant bit first; the last byte is padded with
// zero bits.  The output carries no length information, so trailing padding
// may decode as extra symbols; see EncodeFrame.
//
// Returns ErrUnknownSymbol if text contains a symbol with no code or a byte
// that is not valid UTF-8, and ErrSingletonAlphabet if the table has only one
// symbol.
//
func (e Encoder) Encode(text string) ([]byte, error) {
	packed, _, err := e.EncodeBits(text)
	return packed, err
}

// EncodeBits is like Encode, but also returns the number of meaningful bits
// in the output.
func (e Encoder) EncodeBits(text string) ([]byte, int, error) {
	if e.table.IsSingleton() {
		return nil, 0, fmt.Errorf("%w: codes are zero bits long", ErrSingletonAlphabet)
	}
	packed, nbits, _, err := e.pack(text)
	return packed, nbits, err
}

// EncodeFrame encodes text into a self-delimiting frame:
//
//     [4-byte big-endian symbol count][4-byte big-endian bit length][packed bits]
//
// Unlike Encode, this also works for single-symbol tables, whose codes are
// zero bits long.  A frame holds at most MaxFrameSymbols symbols.
//
func (e Encoder) EncodeFrame(text string) ([]byte, error) {
	packed, nbits, count, err := e.pack(text)
	if err != nil {
		return nil, err
	}
	if count > MaxFrameSymbols || uint64(nbits) > math.MaxUint32 {
		return nil, fmt.Errorf("text too large for a frame: %d symbols, %d bits, at most %d symbols", count, nbits, MaxFrameSymbols)
	}

	out := make([]byte, FrameHeaderSize, FrameHeaderSize+len(packed))
	binary.BigEndian.PutUint32(out[0:4], uint32(count))
	binary.BigEndian.PutUint32(out[4:8], uint32(nbits))
	out = append(out, packed...)
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.table.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.table.MaxSize())
	for _, symbol := range e.table.Symbols() {
		hc, _ := e.table.Code(symbol)
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// pack looks up every symbol of text and packs the concatenated codes.  It
// returns the packed bytes, the number of meaningful bits, and the number of
// symbols.
func (e Encoder) pack(text string) ([]byte, int, int, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	var nbits, count int
	for i, ch := range text {
		if ch == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return nil, 0, 0, fmt.Errorf("%w: invalid UTF-8 byte 0x%02x at offset %d", ErrUnknownSymbol, text[i], i)
			}
		}
		symbol := Symbol(ch)
		hc, found := e.table.Code(symbol)
		if !found {
			return nil, 0, 0, fmt.Errorf("%w: %s at symbol index %d", ErrUnknownSymbol, symbol, count)
		}
		for i := 0; i < hc.Size(); i++ {
			if err := w.WriteBool(hc.Bit(i)); err != nil {
				return nil, 0, 0, fmt.Errorf("failed to pack bits: %w", err)
			}
		}
		nbits += hc.Size()
		count++
	}

	// Close pads the final partial byte with (8 - nbits%8) % 8 zero bits.
	if err := w.Close(); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to pack bits: %w", err)
	}

	assert.Assertf(buf.Len() == (nbits+7)/8, "packed %d bits into %d bytes", nbits, buf.Len())
	return buf.Bytes(), nbits, count, nil
}
