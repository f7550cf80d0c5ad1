package huffcodec

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func makeTestSavedTable() SavedTable {
	return SavedTable{
		Name:    "abc.json",
		Codes:   map[Symbol]Code{'a': "0", 'b': "10", '\n': "11"},
		Symbols: map[Code]Symbol{"0": 'a', "10": 'b', "11": '\n'},
		Weights: map[Symbol]float64{'a': 50, 'b': 25, '\n': 25},
	}
}

func TestSavedTable_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(makeTestSavedTable())
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	expectJSON := `["abc.json",{"\n":"11","a":"0","b":"10"},{"0":"a","10":"b","11":"\n"},{"\n":25,"a":50,"b":25}]`
	if actualJSON := string(raw); expectJSON != actualJSON {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectJSON, actualJSON)
	}
}

func TestSavedTable_UnmarshalJSON(t *testing.T) {
	raw := []byte(`["abc.json", {"a": "0", "b": "10", "\n": "11"}, {"0": "a", "10": "b", "11": "\n"}, {"a": 50.0, "b": 25.0, "\n": 25.0}]`)

	var st SavedTable
	if err := json.Unmarshal(raw, &st); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if expect := makeTestSavedTable(); !reflect.DeepEqual(expect, st) {
		t.Errorf("wrong table:\n\texpect: %#v\n\tactual: %#v", expect, st)
	}

	c, err := LoadCodec(st)
	if err != nil {
		t.Fatalf("LoadCodec failed: %v", err)
	}
	text, err := c.Extract([]byte{0, 0, 0, 3, 0, 0, 0, 5, 0x58})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "ab\n" {
		t.Errorf("expected %q, got %q", "ab\n", text)
	}
}

func TestSavedTable_UnmarshalJSON_Invalid(t *testing.T) {
	for _, raw := range []string{
		`{"name": "abc"}`,
		`["abc", {}, {}]`,
		`["abc", {"ab": "0"}, {"0": "ab"}, {}]`,
		`[1, {}, {}, {}]`,
	} {
		var st SavedTable
		if err := json.Unmarshal([]byte(raw), &st); err == nil {
			t.Errorf("%s: expected an error, got %#v", raw, st)
		}
	}
}

func TestSavedTable_YAML(t *testing.T) {
	raw, err := yaml.Marshal(makeTestSavedTable())
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}

	for _, expect := range []string{`"\n": "11"`, `"11": "\n"`, `"0": "a"`} {
		if !strings.Contains(string(raw), expect) {
			t.Errorf("expected %s in output:\n%s", expect, raw)
		}
	}

	var st SavedTable
	if err := yaml.Unmarshal(raw, &st); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if expect := makeTestSavedTable(); !reflect.DeepEqual(expect, st) {
		t.Errorf("wrong table:\n\texpect: %#v\n\tactual: %#v", expect, st)
	}
}

func TestSavedTable_YAML_EverySymbol(t *testing.T) {
	symbols := append(PrintableSymbols(), 'é', 0, 0x7f)
	for _, symbol := range symbols {
		other := Symbol('x')
		if symbol == other {
			other = 'y'
		}
		expect := SavedTable{
			Name:    "every.yaml",
			Codes:   map[Symbol]Code{symbol: "0", other: "1"},
			Symbols: map[Code]Symbol{"0": symbol, "1": other},
			Weights: map[Symbol]float64{symbol: 12.5, other: 87.5},
		}

		raw, err := yaml.Marshal(expect)
		if err != nil {
			t.Errorf("%s: yaml.Marshal failed: %v", symbol, err)
			continue
		}
		var actual SavedTable
		if err := yaml.Unmarshal(raw, &actual); err != nil {
			t.Errorf("%s: yaml.Unmarshal failed: %v\n%s", symbol, err, raw)
			continue
		}
		if !reflect.DeepEqual(expect, actual) {
			t.Errorf("%s: wrong table:\n\texpect: %#v\n\tactual: %#v", symbol, expect, actual)
		}
	}
}

func TestSavedTable_YAML_Codec(t *testing.T) {
	c, err := NewCodec("line one\nline two\r\n\ttabbed\x0b\x0c", WithName("lines.yaml"))
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	raw, err := yaml.Marshal(c.Save())
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	var st SavedTable
	if err := yaml.Unmarshal(raw, &st); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	loaded, err := LoadCodec(st)
	if err != nil {
		t.Fatalf("LoadCodec failed: %v", err)
	}

	if !reflect.DeepEqual(c.Table().Codes(), loaded.Table().Codes()) {
		t.Errorf("codes differ after YAML round trip")
	}
	if !reflect.DeepEqual(c.Frequencies().Map(), loaded.Frequencies().Map()) {
		t.Errorf("weights differ after YAML round trip")
	}
}
