package huffcodec

import (
	"strconv"
)

// Symbol represents a symbol in the text alphabet, i.e. one Unicode code
// point.  Negative symbols are not valid.
type Symbol rune

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// PrintableAlphabet is the reference alphabet of printable ASCII characters:
// digits, letters, punctuation and whitespace, in that order.
const PrintableAlphabet = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" +
	" \t\n\r\x0b\x0c"

// String returns the quoted string representation of this Symbol.
func (s Symbol) String() string {
	if s < 0 {
		return "<invalid>"
	}
	return strconv.QuoteRune(rune(s))
}

// PrintableSymbols returns PrintableAlphabet as a list of Symbols.
func PrintableSymbols() []Symbol {
	return symbolsOf(PrintableAlphabet)
}

func symbolsOf(text string) []Symbol {
	out := make([]Symbol, 0, len(text))
	for _, ch := range text {
		out = append(out, Symbol(ch))
	}
	return out
}
