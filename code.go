package huffcodec

import (
	"strconv"
	"strings"
)

// Code represents a sequence of bits, written as a string of '0' and '1'
// characters.  The first character is the first bit, i.e. the decision taken
// at the root of the tree.
type Code string

// MakeCode is a convenience function that constructs a Code from individual
// bits.  Any non-zero value is treated as a 1 bit.
func MakeCode(bits ...byte) Code {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		sb.WriteByte(bitChar(bit != 0))
	}
	return Code(sb.String())
}

// Size returns the number of bits in this Code.
func (hc Code) Size() int {
	return len(hc)
}

// Bit returns the i'th bit of this Code.
func (hc Code) Bit(i int) bool {
	return hc[i] == '1'
}

// Valid returns true iff every character of this Code is '0' or '1'.
func (hc Code) Valid() bool {
	for i := 0; i < len(hc); i++ {
		if hc[i] != '0' && hc[i] != '1' {
			return false
		}
	}
	return true
}

// HasPrefix returns true iff prefix is a prefix of this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	return strings.HasPrefix(string(hc), string(prefix))
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(string(hc))
}

func bitChar(bit bool) byte {
	if bit {
		return '1'
	}
	return '0'
}
