package huffcodec

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when frequencies are requested for a text
	// with no symbols, or a tree is requested for an empty table.
	ErrEmptyInput = errors.New("huffcodec: empty input")

	// ErrUnknownSymbol is returned when a symbol has no entry in the code
	// table.
	ErrUnknownSymbol = errors.New("huffcodec: unknown symbol")

	// ErrInvalidEncoding is returned when packed bits do not decode with the
	// code table, or when a code table is malformed.
	ErrInvalidEncoding = errors.New("huffcodec: invalid encoding")

	// ErrSingletonAlphabet is returned when an operation needs at least one
	// non-empty code but the alphabet has a single symbol.
	ErrSingletonAlphabet = errors.New("huffcodec: singleton alphabet")

	// ErrInvalidWeight is returned when a frequency table contains a negative
	// or NaN weight, or the same symbol twice.
	ErrInvalidWeight = errors.New("huffcodec: invalid weight")
)
