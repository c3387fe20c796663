package dsl

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source is an opened dictionary file decoded to UTF-8.
type Source struct {
	r      io.Reader
	closer io.Closer
	size   int64
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	progress io.Writer
}

// WithProgress copies every byte read from disk (or, for dictzip files, every
// decompressed byte) to w. A progress bar is the usual w.
func WithProgress(w io.Writer) OpenOption {
	return func(o *openOptions) { o.progress = w }
}

// Open opens a plain .dsl or a dictzip .dz source. UTF-16 files (LE or BE, with
// BOM) and UTF-8 files with or without BOM are decoded to UTF-8.
func Open(path string, opts ...OpenOption) (*Source, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dsl: open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("dsl: stat %q: %w", path, err)
	}

	var (
		raw  io.Reader = f
		size           = info.Size()
	)
	if strings.EqualFold(filepath.Ext(path), ".dz") {
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("dsl: open dictzip %q: %w", path, err)
		}
		raw = io.NewSectionReader(z, 0, math.MaxInt64)
		size = -1
	}
	if o.progress != nil {
		raw = io.TeeReader(raw, o.progress)
	}

	return &Source{
		r:      NewDecoder(raw),
		closer: f,
		size:   size,
	}, nil
}

// NewDecoder converts r to UTF-8, honouring a UTF-8 or UTF-16 byte order mark.
func NewDecoder(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes the underlying file.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("dsl: close: %w", err)
	}
	return nil
}

// Size is the on-disk size in bytes, or -1 when the decompressed size is
// unknown.
func (s *Source) Size() int64 { return s.size }
