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

// Package osmxml writes OpenStreetMap XML documents from the entities of
// the model package.
package osmxml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/destel/rill"

	"m4o.io/osmxml/internal/compress"
	"m4o.io/osmxml/internal/xmlfmt"
	"m4o.io/osmxml/model"
)

// ErrWriterClosed is returned by writes after Close.
var ErrWriterClosed = errors.New("writer closed")

// Writer assembles an OSM XML document onto an io.Writer.  Sections are
// written in the order they are called; the usual sequence is WriteHeader,
// WriteBounds, WriteNodes, WriteWays, WriteRelations and WriteFooter, which
// WriteCollection performs in one call.
//
// Entities of one batch are serialized concurrently but always written in
// the order given.  The first error is sticky: every later call returns it.
type Writer struct {
	cfg   *writerOptions
	attrs model.Attributes

	zw  io.WriteCloser
	buf *bufio.Writer

	written int
	err     error
	closed  bool
}

// NewWriter returns a new writer, configured with options, that writes to w.
// Close must be called to flush the document; it does not close w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	cfg := defaultWriterConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.nCPU == 0 {
		cfg.nCPU = 1
	}

	zw, err := compress.NewWriter(w, cfg.compression)
	if err != nil {
		return nil, err
	}

	var attrs model.Attributes
	for _, a := range cfg.attrs {
		attrs = attrs.With(a.name, a.value)
	}

	return &Writer{
		cfg:   &cfg,
		attrs: attrs,
		zw:    zw,
		buf:   bufio.NewWriter(zw),
	}, nil
}

// Written returns the number of entities written so far.
func (w *Writer) Written() int {
	return w.written
}

// WriteHeader writes the XML declaration and the opening osm element.
func (w *Writer) WriteHeader() error {
	generator, err := xmlfmt.EscapeAttr(w.cfg.generator)
	if err != nil {
		return w.fail(fmt.Errorf("cannot write header: %w", err))
	}

	var b strings.Builder

	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<osm version="0.6" generator="`)
	b.WriteString(generator)
	b.WriteString(`"`)

	if w.cfg.neverUpload {
		b.WriteString(` upload="never"`)
	} else if !w.cfg.noUploadFalse {
		b.WriteString(` upload="false"`)
	}

	if w.cfg.neverDownload {
		b.WriteString(` download="never"`)
	}

	if w.cfg.locked {
		b.WriteString(` locked="true"`)
	}

	b.WriteString(">\n")

	slog.Debug("writing header", "generator", w.cfg.generator)

	return w.writeString(b.String())
}

// WriteBounds writes the bounds element.  Invalid bounds are skipped.
func (w *Writer) WriteBounds(bbox model.BoundingBox) error {
	if !bbox.Valid {
		slog.Debug("skipping invalid bounds")

		return w.check()
	}

	s, err := bbox.Markup(w.cfg.precision)
	if err != nil {
		return w.fail(fmt.Errorf("cannot write bounds: %w", err))
	}

	return w.writeString(s + "\n")
}

// WriteNodes writes nodes in order.
func (w *Writer) WriteNodes(nodes []*model.Node) error {
	return writeEntities(w, "nodes", nodes)
}

// WriteWays writes ways in order.
func (w *Writer) WriteWays(ways []*model.Way) error {
	return writeEntities(w, "ways", ways)
}

// WriteRelations writes relations in order.
func (w *Writer) WriteRelations(relations []*model.Relation) error {
	return writeEntities(w, "relations", relations)
}

// WriteFooter writes the closing osm element.
func (w *Writer) WriteFooter() error {
	return w.writeString("</osm>")
}

// WriteCollection writes a complete document holding every entity of c.
func (w *Writer) WriteCollection(c *model.Collection) error {
	steps := []func() error{
		w.WriteHeader,
		func() error { return w.WriteBounds(c.Bounds) },
		func() error { return w.WriteNodes(c.Nodes()) },
		func() error { return w.WriteWays(c.Ways()) },
		func() error { return w.WriteRelations(c.Relations()) },
		w.WriteFooter,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes buffered output and finishes the compressed stream.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}

	w.closed = true

	if err := w.buf.Flush(); err != nil && w.err == nil {
		w.err = fmt.Errorf("cannot flush document: %w", err)
	}

	if err := w.zw.Close(); err != nil && w.err == nil {
		w.err = fmt.Errorf("cannot close %s stream: %w", w.cfg.compression, err)
	}

	return w.err
}

func writeEntities[E model.Entity](w *Writer, section string, entities []E) error {
	if err := w.check(); err != nil {
		return err
	}

	slog.Debug("writing section", "section", section, "count", len(entities))

	in := rill.FromSlice(entities, nil)
	serialized := rill.OrderedMap(in, int(w.cfg.nCPU), func(e E) (string, error) {
		return e.Serialize(w.attrs, w.cfg.precision)
	})

	// a single consumer keeps the output in input order
	err := rill.ForEach(serialized, 1, func(s string) error {
		if err := w.writeString(s + "\n"); err != nil {
			return err
		}

		w.written++
		if w.cfg.progress != nil {
			w.cfg.progress(w.written)
		}

		return nil
	})
	if err != nil {
		return w.fail(fmt.Errorf("cannot write %s: %w", section, err))
	}

	return nil
}

func (w *Writer) writeString(s string) error {
	if err := w.check(); err != nil {
		return err
	}

	if _, err := w.buf.WriteString(s); err != nil {
		return w.fail(fmt.Errorf("cannot write document: %w", err))
	}

	return nil
}

func (w *Writer) check() error {
	if w.err != nil {
		return w.err
	}

	if w.closed {
		return ErrWriterClosed
	}

	return nil
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}

	return w.err
}
