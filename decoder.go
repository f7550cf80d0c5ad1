package huffcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Decoder implements a decoder for a CodeTable.
type Decoder struct {
	table *CodeTable
}

// Init initializes this Decoder to decode with the given table.
func (d *Decoder) Init(table *CodeTable) {
	assert.Assertf(table != nil, "Decoder.Init called with a nil table")
	*d = Decoder{table: table}
}

// Table returns the table this Decoder decodes with.
func (d Decoder) Table() *CodeTable {
	return d.table
}

// Decode decodes bytes produced by Encoder.Encode.  Bits are consumed one at a
// time, most significant bit first, until they spell a code of the table.
// Fewer than 8 trailing zero bits that match no code are taken to be padding.
//
// Returns ErrInvalidEncoding if the bits cannot be decoded, and
// ErrSingletonAlphabet if the table has only one symbol.
//
func (d Decoder) Decode(packed []byte) (string, error) {
	if d.table.IsSingleton() {
		return "", fmt.Errorf("%w: cannot count zero-bit codes without a frame", ErrSingletonAlphabet)
	}
	text, _, err := d.unpack(packed, 8*len(packed), true)
	return text, err
}

// DecodeBits decodes exactly the first nbits bits of packed, as returned by
// Encoder.EncodeBits.
func (d Decoder) DecodeBits(packed []byte, nbits int) (string, error) {
	if d.table.IsSingleton() {
		return "", fmt.Errorf("%w: cannot count zero-bit codes without a frame", ErrSingletonAlphabet)
	}
	if nbits < 0 || nbits > 8*len(packed) {
		return "", fmt.Errorf("%w: %d bits requested from %d bytes", ErrInvalidEncoding, nbits, len(packed))
	}
	text, _, err := d.unpack(packed, nbits, false)
	return text, err
}

// DecodeFrame decodes a frame produced by Encoder.EncodeFrame.  The frame's
// bit length must match its payload exactly, and the payload must decode to
// exactly the frame's symbol count, which may not exceed MaxFrameSymbols.
func (d Decoder) DecodeFrame(data []byte) (string, error) {
	if len(data) < FrameHeaderSize {
		return "", fmt.Errorf("%w: frame of %d bytes is shorter than its header", ErrInvalidEncoding, len(data))
	}

	count := int(binary.BigEndian.Uint32(data[0:4]))
	nbits := int(binary.BigEndian.Uint32(data[4:8]))
	payload := data[FrameHeaderSize:]
	if want := (nbits + 7) / 8; len(payload) != want {
		return "", fmt.Errorf("%w: frame declares %d bits but carries %d bytes, expected %d", ErrInvalidEncoding, nbits, len(payload), want)
	}

	if count > MaxFrameSymbols {
		return "", fmt.Errorf("%w: frame declares %d symbols, at most %d are allowed", ErrInvalidEncoding, count, MaxFrameSymbols)
	}
	if minBits := count * d.table.MinSize(); nbits < minBits {
		return "", fmt.Errorf("%w: frame declares %d symbols in only %d bits", ErrInvalidEncoding, count, nbits)
	}

	if d.table.IsSingleton() {
		if nbits != 0 {
			return "", fmt.Errorf("%w: single-symbol frame declares %d bits", ErrInvalidEncoding, nbits)
		}
		symbol := d.table.Symbols()[0]
		return strings.Repeat(string(rune(symbol)), count), nil
	}

	text, n, err := d.unpack(payload, nbits, false)
	if err != nil {
		return "", err
	}
	if n != count {
		return "", fmt.Errorf("%w: frame declares %d symbols but decodes to %d", ErrInvalidEncoding, count, n)
	}
	return text, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.table.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.table.MaxSize())
	keys := make(byCode, 0, d.table.Len())
	for hc := range d.table.symbols {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %s\n", hc, d.table.symbols[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short description of this Decoder.
func (d Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", d.table.Len(), d.table.MinSize(), d.table.MaxSize())
}

var _ fmt.Stringer = Decoder{}

// unpack greedily decodes the first nbits bits of packed.  It returns the
// text and the number of symbols decoded.  If padding is true, fewer than 8
// unmatched trailing zero bits are ignored.
func (d Decoder) unpack(packed []byte, nbits int, padding bool) (string, int, error) {
	r := bitio.NewReader(bytes.NewReader(packed))
	maxSize := d.table.MaxSize()

	var sb strings.Builder
	var count int
	candidate := make([]byte, 0, maxSize)
	for pos := 0; pos < nbits; pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return "", 0, fmt.Errorf("%w: failed to read bit %d: %v", ErrInvalidEncoding, pos, err)
		}

		candidate = append(candidate, bitChar(bit))
		if symbol, found := d.table.symbols[Code(candidate)]; found {
			sb.WriteRune(rune(symbol))
			count++
			candidate = candidate[:0]
			continue
		}

		if len(candidate) >= maxSize {
			return "", 0, fmt.Errorf("%w: no code matches %q ending at bit %d", ErrInvalidEncoding, candidate, pos)
		}
	}

	if len(candidate) != 0 && !(padding && isPadding(candidate)) {
		return "", 0, fmt.Errorf("%w: %d trailing bits %q match no code", ErrInvalidEncoding, len(candidate), candidate)
	}
	return sb.String(), count, nil
}

func isPadding(candidate []byte) bool {
	if len(candidate) >= 8 {
		return false
	}
	for _, ch := range candidate {
		if ch != '0' {
			return false
		}
	}
	return true
}

// type byCode {{{

// byCode sorts codes by (size, bits), the order used by Dump.
type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size() != b.Size() {
		return a.Size() < b.Size()
	}
	return a < b
}

var _ sort.Interface = byCode(nil)

// }}}
