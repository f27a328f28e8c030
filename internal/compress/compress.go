// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compress wraps output streams with the compression formats OSM
// tooling commonly reads.
package compress

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

var ErrUnknownCompression = errors.New("unknown compression")

// Compression is an enumeration of stream compression formats.
type Compression int

const (
	NONE Compression = iota
	GZIP
	ZSTD
	LZ4
	XZ
)

var names = map[Compression]string{
	NONE: "none",
	GZIP: "gzip",
	ZSTD: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

func (c Compression) String() string {
	if n, ok := names[c]; ok {
		return n
	}

	return fmt.Sprintf("Compression(%d)", int(c))
}

// Extension returns the file name suffix conventionally used for c.
func (c Compression) Extension() string {
	switch c {
	case GZIP:
		return ".gz"
	case ZSTD:
		return ".zst"
	case LZ4:
		return ".lz4"
	case XZ:
		return ".xz"
	default:
		return ""
	}
}

// Parse converts a name such as "gzip" into a Compression.
func Parse(s string) (Compression, error) {
	for c, n := range names {
		if strings.EqualFold(n, s) {
			return c, nil
		}
	}

	return NONE, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// Names returns the names accepted by Parse, in enumeration order.
func Names() []string {
	return []string{NONE.String(), GZIP.String(), ZSTD.String(), LZ4.String(), XZ.String()}
}

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// NewWriter wraps w so that everything written is compressed with c.
// Closing the result flushes the compressor but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case NONE:
		return nopCloserWriter{w}, nil
	case GZIP:
		return gzip.NewWriter(w), nil
	case ZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("cannot create zstd writer: %w", err)
		}

		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("cannot create xz writer: %w", err)
		}

		return xw, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}

// NewReader wraps r so that reads return the data decompressed with c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case NONE:
		return io.NopCloser(r), nil
	case GZIP:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot create gzip reader: %w", err)
		}

		return gr, nil
	case ZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot create zstd reader: %w", err)
		}

		return zr.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case XZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot create xz reader: %w", err)
		}

		return io.NopCloser(xr), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}
