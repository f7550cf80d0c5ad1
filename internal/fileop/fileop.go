// Package fileop reads and writes the files handled by the workspace: text
// (.txt), compressed data (.bin), and saved code tables (.json, .yaml, .yml).
// The kind of a file is chosen by its extension.
package fileop

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/chronos-tachyon/huffcodec"
)

var (
	// ErrEmptyPath is returned when a path is empty.
	ErrEmptyPath = errors.New("path is empty")

	// ErrFileType is returned when a path's extension does not match the
	// kind of file requested.
	ErrFileType = errors.New("file type is not recognised or handled")
)

// Kind is the kind of a file, as given by its extension.
type Kind uint8

const (
	UnknownKind Kind = iota
	TextKind
	BinaryKind
	JSONKind
	YAMLKind
)

var kindNames = [...]string{"unknown", "text", "binary", "json", "yaml"}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindOf returns the Kind of the given path.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return TextKind
	case ".bin":
		return BinaryKind
	case ".json":
		return JSONKind
	case ".yaml", ".yml":
		return YAMLKind
	default:
		return UnknownKind
	}
}

// Operator reads and writes files on a filesystem.
type Operator struct {
	fs afero.Fs
}

// New returns an Operator for the given filesystem.
func New(fs afero.Fs) *Operator {
	return &Operator{fs: fs}
}

// NewOS returns an Operator for the operating system's filesystem.
func NewOS() *Operator {
	return New(afero.NewOsFs())
}

// Fs returns the underlying filesystem.
func (o *Operator) Fs() afero.Fs {
	return o.fs
}

// ReadText reads a .txt file.
func (o *Operator) ReadText(path string) (string, error) {
	raw, err := o.read(path, TextKind)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// WriteText writes a .txt file.
func (o *Operator) WriteText(path string, text string) error {
	return o.write(path, TextKind, []byte(text))
}

// ReadBinary reads a .bin file.
func (o *Operator) ReadBinary(path string) ([]byte, error) {
	return o.read(path, BinaryKind)
}

// WriteBinary writes a .bin file.
func (o *Operator) WriteBinary(path string, data []byte) error {
	return o.write(path, BinaryKind, data)
}

// ReadTable reads a saved code table from a .json, .yaml or .yml file.
func (o *Operator) ReadTable(path string) (huffcodec.SavedTable, error) {
	var saved huffcodec.SavedTable

	kind := KindOf(path)
	if kind != JSONKind && kind != YAMLKind {
		if err := checkPath(path, JSONKind); err != nil {
			return saved, err
		}
	}

	raw, err := o.read(path, kind)
	if err != nil {
		return saved, err
	}

	switch kind {
	case JSONKind:
		err = json.Unmarshal(raw, &saved)
	case YAMLKind:
		err = yaml.Unmarshal(raw, &saved)
	}
	if err != nil {
		return saved, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return saved, nil
}

// WriteTable writes a saved code table to a .json, .yaml or .yml file.
func (o *Operator) WriteTable(path string, saved huffcodec.SavedTable) error {
	kind := KindOf(path)

	var raw []byte
	var err error
	switch kind {
	case JSONKind:
		raw, err = json.Marshal(saved)
	case YAMLKind:
		raw, err = yaml.Marshal(saved)
	default:
		return checkPath(path, JSONKind)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize table %q: %w", saved.Name, err)
	}
	return o.write(path, kind, raw)
}

func (o *Operator) read(path string, kind Kind) ([]byte, error) {
	if err := checkPath(path, kind); err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

func (o *Operator) write(path string, kind Kind, data []byte) error {
	if err := checkPath(path, kind); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := o.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(o.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func checkPath(path string, kind Kind) error {
	if path == "" {
		return ErrEmptyPath
	}
	if actual := KindOf(path); actual != kind {
		return fmt.Errorf("%w: %s is a %s file, expected a %s file", ErrFileType, path, actual, kind)
	}
	return nil
}
