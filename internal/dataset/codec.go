package dataset

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// gzipMagic is the two-byte header of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Load reads a gob-encoded [Frame] from path.
//
// Gzip-compressed files are detected by their header and decompressed
// transparently. Every failure, including a missing file, wraps
// [ErrUnavailable].
func Load(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads a gob-encoded [Frame] from r and validates it.
func Decode(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	head, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %w", ErrUnavailable, err)
		}
		defer gz.Close()
		src = gz
	}

	var f Frame
	if err := gob.NewDecoder(src).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: gob decode: %w", ErrUnavailable, err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode writes f to w as gob, gzip-compressed when compress is set.
func Encode(w io.Writer, f *Frame, compress bool) error {
	if err := f.Validate(); err != nil {
		return err
	}

	if !compress {
		return gob.NewEncoder(w).Encode(f)
	}

	gz := gzip.NewWriter(w)
	if err := gob.NewEncoder(gz).Encode(f); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// Save writes f to path, replacing any existing file.
func Save(path string, f *Frame, compress bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	if err := Encode(file, f, compress); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return file.Close()
}
