package huffcodec

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// SavedTable is the persisted form of a Codec: a display name, the code
// mapping in both directions, and the weight of every symbol.
//
// Its JSON form is the 4-element array
//
//     [name, {symbol: code}, {code: symbol}, {symbol: percent}]
//
// and its YAML form is a mapping with the keys name, codes, symbols and
// weights.
//
type SavedTable struct {
	Name    string
	Codes   map[Symbol]Code
	Symbols map[Code]Symbol
	Weights map[Symbol]float64
}

type savedTableFields struct {
	Name    string             `yaml:"name"`
	Codes   map[string]string  `yaml:"codes"`
	Symbols map[string]string  `yaml:"symbols"`
	Weights map[string]float64 `yaml:"weights"`
}

// MarshalJSON fulfills json.Marshaler.
func (st SavedTable) MarshalJSON() ([]byte, error) {
	f := st.fields()
	return json.Marshal([]interface{}{f.Name, f.Codes, f.Symbols, f.Weights})
}

// UnmarshalJSON fulfills json.Unmarshaler.
func (st *SavedTable) UnmarshalJSON(raw []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return err
	}
	if len(parts) != 4 {
		return fmt.Errorf("saved table: expected 4 elements, got %d", len(parts))
	}

	var f savedTableFields
	if err := json.Unmarshal(parts[0], &f.Name); err != nil {
		return fmt.Errorf("saved table: name: %w", err)
	}
	if err := json.Unmarshal(parts[1], &f.Codes); err != nil {
		return fmt.Errorf("saved table: codes: %w", err)
	}
	if err := json.Unmarshal(parts[2], &f.Symbols); err != nil {
		return fmt.Errorf("saved table: symbols: %w", err)
	}
	if err := json.Unmarshal(parts[3], &f.Weights); err != nil {
		return fmt.Errorf("saved table: weights: %w", err)
	}
	return st.setFields(f)
}

// MarshalYAML fulfills yaml.Marshaler.  Symbols and codes are written as
// double-quoted scalars so that whitespace and control symbols survive.
func (st SavedTable) MarshalYAML() (interface{}, error) {
	f := st.fields()

	weights := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range sortedKeys(f.Weights) {
		value := new(yaml.Node)
		if err := value.Encode(f.Weights[key]); err != nil {
			return nil, fmt.Errorf("saved table: weight of %q: %w", key, err)
		}
		weights.Content = append(weights.Content, quotedNode(key), value)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = []*yaml.Node{
		keyNode("name"), quotedNode(f.Name),
		keyNode("codes"), quotedMapping(f.Codes),
		keyNode("symbols"), quotedMapping(f.Symbols),
		keyNode("weights"), weights,
	}
	return root, nil
}

// UnmarshalYAML fulfills yaml.Unmarshaler.
func (st *SavedTable) UnmarshalYAML(value *yaml.Node) error {
	var f savedTableFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	return st.setFields(f)
}

var (
	_ json.Marshaler   = SavedTable{}
	_ json.Unmarshaler = (*SavedTable)(nil)
	_ yaml.Marshaler   = SavedTable{}
	_ yaml.Unmarshaler = (*SavedTable)(nil)
)

func (st SavedTable) fields() savedTableFields {
	f := savedTableFields{
		Name:    st.Name,
		Codes:   make(map[string]string, len(st.Codes)),
		Symbols: make(map[string]string, len(st.Symbols)),
		Weights: make(map[string]float64, len(st.Weights)),
	}
	for symbol, hc := range st.Codes {
		f.Codes[string(rune(symbol))] = string(hc)
	}
	for hc, symbol := range st.Symbols {
		f.Symbols[string(hc)] = string(rune(symbol))
	}
	for symbol, percent := range st.Weights {
		f.Weights[string(rune(symbol))] = percent
	}
	return f
}

func (st *SavedTable) setFields(f savedTableFields) error {
	out := SavedTable{
		Name:    f.Name,
		Codes:   make(map[Symbol]Code, len(f.Codes)),
		Symbols: make(map[Code]Symbol, len(f.Symbols)),
		Weights: make(map[Symbol]float64, len(f.Weights)),
	}
	for key, hc := range f.Codes {
		symbol, err := parseSymbol(key)
		if err != nil {
			return err
		}
		out.Codes[symbol] = Code(hc)
	}
	for hc, value := range f.Symbols {
		symbol, err := parseSymbol(value)
		if err != nil {
			return err
		}
		out.Symbols[Code(hc)] = symbol
	}
	for key, percent := range f.Weights {
		symbol, err := parseSymbol(key)
		if err != nil {
			return err
		}
		out.Weights[symbol] = percent
	}
	*st = out
	return nil
}

func keyNode(str string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: str}
}

func quotedNode(str string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: str, Style: yaml.DoubleQuotedStyle}
}

func quotedMapping(m map[string]string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range sortedKeys(m) {
		node.Content = append(node.Content, quotedNode(key), quotedNode(m[key]))
	}
	return node
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func parseSymbol(str string) (Symbol, error) {
	ch, size := utf8.DecodeRuneInString(str)
	if size == 0 || size != len(str) {
		return InvalidSymbol, fmt.Errorf("saved table: %q is not a single symbol", str)
	}
	return Symbol(ch), nil
}
