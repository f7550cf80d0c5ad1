// Package workspace holds the currently open encoder and performs the file
// level operations on it: building a new encoder from a sample text, opening
// and saving encoders, and compressing and extracting files.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chronos-tachyon/huffcodec"
	"github.com/chronos-tachyon/huffcodec/internal/fileop"
)

// UnsavedName is the name given to an encoder that has not been saved yet.
const UnsavedName = "untitled.json*"

var (
	// ErrNoEncoder is returned by operations that need an open encoder
	// when none is open.
	ErrNoEncoder = errors.New("no encoder is open")

	// ErrEmptyPath is returned when a source or destination path is empty.
	ErrEmptyPath = fileop.ErrEmptyPath
)

// Options controls how a Workspace builds encoders and writes output.
type Options struct {
	// Workers is the number of goroutines used to count symbols.
	Workers int

	// Fill gives every printable symbol a code, not only the symbols
	// present in the sample text.
	Fill bool

	// Framed selects the self-delimiting output format for Compress and
	// Extract.  Raw output carries no length and may decode with trailing
	// padding symbols.
	Framed bool
}

// Workspace holds at most one open encoder.
type Workspace struct {
	files  *fileop.Operator
	logger zerolog.Logger
	opts   Options
	codec  *huffcodec.Codec
}

// New returns an empty Workspace.
func New(files *fileop.Operator, logger zerolog.Logger, opts Options) *Workspace {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Workspace{files: files, logger: logger, opts: opts}
}

// Codec returns the open encoder, or nil if none is open.
func (w *Workspace) Codec() *huffcodec.Codec {
	return w.codec
}

// Name returns the name of the open encoder, or "" if none is open.
func (w *Workspace) Name() string {
	if w.codec == nil {
		return ""
	}
	return w.codec.Name()
}

// NewEncoder builds a new encoder from the text file at textPath and makes
// it the open encoder.  The new encoder is named UnsavedName.
func (w *Workspace) NewEncoder(textPath string) (string, error) {
	text, err := w.files.ReadText(textPath)
	if err != nil {
		return "", err
	}

	opts := []huffcodec.Option{
		huffcodec.WithName(UnsavedName),
		huffcodec.WithWorkers(w.opts.Workers),
	}
	if !w.opts.Fill {
		opts = append(opts, huffcodec.WithoutFill())
	}

	codec, err := huffcodec.NewCodec(text, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to build encoder from %s: %w", textPath, err)
	}

	w.codec = codec
	w.logger.Info().
		Str("source", textPath).
		Int("symbols", codec.Table().Len()).
		Int("maxBits", codec.Table().MaxSize()).
		Msg("built new encoder")
	return codec.Name(), nil
}

// OpenEncoder loads a saved encoder from path and makes it the open encoder.
// It returns the name stored in the file.
func (w *Workspace) OpenEncoder(path string) (string, error) {
	saved, err := w.files.ReadTable(path)
	if err != nil {
		return "", err
	}

	codec, err := huffcodec.LoadCodec(saved)
	if err != nil {
		return "", fmt.Errorf("failed to open encoder %s: %w", path, err)
	}

	w.codec = codec
	w.logger.Info().
		Str("path", path).
		Str("name", codec.Name()).
		Int("symbols", codec.Table().Len()).
		Msg("opened encoder")
	return codec.Name(), nil
}

// SaveEncoder writes the open encoder to path.  The encoder is renamed to
// the base name of path before it is written.
func (w *Workspace) SaveEncoder(path string) (string, error) {
	if w.codec == nil {
		return "", ErrNoEncoder
	}
	if path == "" {
		return "", ErrEmptyPath
	}

	name := filepath.Base(path)
	saved := w.codec.Save()
	saved.Name = name
	if err := w.files.WriteTable(path, saved); err != nil {
		return "", err
	}

	w.codec.SetName(name)
	w.logger.Info().Str("path", path).Str("name", name).Msg("saved encoder")
	return name, nil
}

// Compress encodes the text file src with the open encoder and writes the
// result to the binary file dst.
func (w *Workspace) Compress(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}
	if w.codec == nil {
		return ErrNoEncoder
	}

	text, err := w.files.ReadText(src)
	if err != nil {
		return err
	}

	var data []byte
	if w.opts.Framed {
		data, err = w.codec.Compress(text)
	} else {
		data, err = w.codec.Encode(text)
	}
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", src, err)
	}

	if err := w.files.WriteBinary(dst, data); err != nil {
		return err
	}

	w.logger.Info().
		Str("source", src).
		Str("target", dst).
		Int("inBytes", len(text)).
		Int("outBytes", len(data)).
		Bool("framed", w.opts.Framed).
		Msg("compressed file")
	return nil
}

// Extract decodes the binary file src with the open encoder and writes the
// result to the text file dst.
func (w *Workspace) Extract(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}
	if w.codec == nil {
		return ErrNoEncoder
	}

	data, err := w.files.ReadBinary(src)
	if err != nil {
		return err
	}

	var text string
	if w.opts.Framed {
		text, err = w.codec.Extract(data)
	} else {
		text, err = w.codec.Decode(data)
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", src, err)
	}

	if err := w.files.WriteText(dst, text); err != nil {
		return err
	}

	w.logger.Info().
		Str("source", src).
		Str("target", dst).
		Int("inBytes", len(data)).
		Int("outBytes", len(text)).
		Bool("framed", w.opts.Framed).
		Msg("extracted file")
	return nil
}
