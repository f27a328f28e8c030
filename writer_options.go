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

package osmxml

import (
	"runtime"
	"time"

	"m4o.io/osmxml/internal/compress"
)

// Compression selects how the document stream is compressed.
type Compression = compress.Compression

const (
	NONE = compress.NONE
	GZIP = compress.GZIP
	ZSTD = compress.ZSTD
	LZ4  = compress.LZ4
	XZ   = compress.XZ
)

// ErrUnknownCompression is returned for names ParseCompression does not know.
var ErrUnknownCompression = compress.ErrUnknownCompression

// ParseCompression converts a name such as "gzip" into a Compression.
func ParseCompression(s string) (Compression, error) {
	return compress.Parse(s)
}

const (
	DefaultGenerator = "osmxml"

	// DefaultPrecision is the number of fractional digits written for
	// coordinates.
	DefaultPrecision = 9

	// TimestampLayout is the layout of the timestamp attribute.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// writerOptions provides optional configuration parameters for Writer construction.
type writerOptions struct {
	generator     string
	neverUpload   bool
	noUploadFalse bool
	neverDownload bool
	locked        bool

	attrs     []attrOption
	precision int

	compression Compression
	nCPU        uint16 // the number of CPUs used to serialize a batch

	progress func(n int)
}

type attrOption struct {
	name, value string
}

// WriterOption configures how we set up the writer.
type WriterOption func(*writerOptions)

// WithGenerator sets the generator attribute of the osm element.
func WithGenerator(generator string) WriterOption {
	return func(o *writerOptions) {
		o.generator = generator
	}
}

// WithNeverUpload marks the document with upload="never".
func WithNeverUpload() WriterOption {
	return func(o *writerOptions) {
		o.neverUpload = true
	}
}

// WithNoUploadFalse omits the upload="false" attribute the header carries
// by default.
func WithNoUploadFalse() WriterOption {
	return func(o *writerOptions) {
		o.noUploadFalse = true
	}
}

// WithNeverDownload marks the document with download="never".
func WithNeverDownload() WriterOption {
	return func(o *writerOptions) {
		o.neverDownload = true
	}
}

// WithLocked marks the document with locked="true".
func WithLocked() WriterOption {
	return func(o *writerOptions) {
		o.locked = true
	}
}

// WithVersion adds version="1" to every entity.
func WithVersion() WriterOption {
	return WithAttribute("version", "1")
}

// WithTimestamp adds a timestamp attribute, in UTC, to every entity.
func WithTimestamp(ts time.Time) WriterOption {
	return WithAttribute("timestamp", ts.UTC().Format(TimestampLayout))
}

// WithAttribute adds an arbitrary attribute to every entity.  A later option
// with the same name replaces the value.
func WithAttribute(name, value string) WriterOption {
	return func(o *writerOptions) {
		o.attrs = append(o.attrs, attrOption{name: name, value: value})
	}
}

// WithPrecision sets the number of fractional digits written for coordinates.
func WithPrecision(precision int) WriterOption {
	return func(o *writerOptions) {
		o.precision = precision
	}
}

// WithCompression compresses the document stream.  The default is NONE.
func WithCompression(compression Compression) WriterOption {
	return func(o *writerOptions) {
		o.compression = compression
	}
}

// WithNCpus sets the number of goroutines serializing each batch.
func WithNCpus(n uint16) WriterOption {
	return func(o *writerOptions) {
		o.nCPU = n
	}
}

// WithProgress registers a callback invoked after every entity is written
// with the running total of entities written.
func WithProgress(fn func(n int)) WriterOption {
	return func(o *writerOptions) {
		o.progress = fn
	}
}

// defaultWriterConfig provides a default configuration for writers.
var defaultWriterConfig = writerOptions{
	generator:   DefaultGenerator,
	precision:   DefaultPrecision,
	compression: NONE,
	nCPU:        uint16(runtime.GOMAXPROCS(-1)),
}
