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

package render

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmxml"
	"m4o.io/osmxml/cmd/osmxml/cli"
	"m4o.io/osmxml/counter"
	"m4o.io/osmxml/model"
)

var out io.Writer = os.Stdout

var create = func(name string) (io.WriteCloser, error) { return os.Create(name) }

var compression osmxml.Compression

func init() {
	cli.RootCmd.AddCommand(renderCmd)

	flags := renderCmd.Flags()
	flags.StringP("output", "o", "", "write the document to this file instead of stdout")
	flags.Int64("start-id", 0, "start allocating identifiers after this value")
	flags.Bool("positive-id", false, "allocate positive identifiers")
	flags.Bool("save-id", false, "persist the id counter after writing")
	flags.Int("precision", osmxml.DefaultPrecision, "number of fractional digits written for coordinates")
	flags.Bool("add-version", false, "add version=\"1\" to every entity")
	flags.Bool("add-timestamp", false, "add the current time as timestamp to every entity")
	flags.Bool("never-upload", false, "mark the document with upload=\"never\"")
	flags.Bool("no-upload-false", false, "omit upload=\"false\" from the document")
	flags.Bool("never-download", false, "mark the document with download=\"never\"")
	flags.Bool("locked", false, "mark the document with locked=\"true\"")
	flags.String("generator", osmxml.DefaultGenerator, "generator attribute of the document")
	flags.VarP(cli.NewCompressionValue(osmxml.NONE, &compression), "compression", "z",
		"compress the document: none, gzip, zstd, lz4 or xz")
	flags.Uint16P("cpu", "c", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use for serialization")
	cli.AddStoreFlags(flags)
}

var renderCmd = &cobra.Command{
	Use:   "render [<manifest>]",
	Short: "Render a YAML entity manifest as OSM XML",
	Long:  "Render a YAML entity manifest as an OSM XML document",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := execute(cmd, args); err != nil {
			log.Fatal(err)
		}
	},
}

// execute runs the render command, releasing everything it opened before
// returning.
func execute(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		in = f
	}

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	store, release, err := cli.OpenStore(cmd.Context(), cmd.Flags())
	if err != nil {
		return err
	}
	defer release()

	cfg.store = store

	if path == "" {
		_, err = runRender(cmd.Context(), in, out, cfg)

		return err
	}

	cfg.progress = true

	s, err := renderFile(cmd.Context(), in, path, cfg)
	if err != nil {
		return err
	}

	renderSummary(s)

	return nil
}

// renderFile renders the manifest read from in to a new file at path.  The
// file is closed before returning and a failed close fails the render.
func renderFile(ctx context.Context, in io.Reader, path string, cfg renderConfig) (*summary, error) {
	f, err := create(path)
	if err != nil {
		return nil, err
	}

	s, err := runRender(ctx, in, f, cfg)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("cannot close %s: %w", path, cerr)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}

type renderConfig struct {
	startID  int64
	positive bool
	save     bool
	store    counter.Store
	progress bool

	opts []osmxml.WriterOption
}

type summary struct {
	Nodes     int
	Ways      int
	Relations int
	Bytes     uint64
	Bounds    model.BoundingBox
	Counter   int64
}

func configFromFlags(cmd *cobra.Command) (renderConfig, error) {
	flags := cmd.Flags()

	var cfg renderConfig
	var err error

	if cfg.startID, err = flags.GetInt64("start-id"); err != nil {
		return cfg, err
	}

	if cfg.positive, err = flags.GetBool("positive-id"); err != nil {
		return cfg, err
	}

	if cfg.save, err = flags.GetBool("save-id"); err != nil {
		return cfg, err
	}

	precision, err := flags.GetInt("precision")
	if err != nil {
		return cfg, err
	}

	generator, err := flags.GetString("generator")
	if err != nil {
		return cfg, err
	}

	ncpu, err := flags.GetUint16("cpu")
	if err != nil {
		return cfg, err
	}

	cfg.opts = append(cfg.opts,
		osmxml.WithPrecision(precision),
		osmxml.WithGenerator(generator),
		osmxml.WithCompression(compression),
		osmxml.WithNCpus(ncpu))

	toggles := []struct {
		flag string
		opt  osmxml.WriterOption
	}{
		{"add-version", osmxml.WithVersion()},
		{"add-timestamp", osmxml.WithTimestamp(time.Now())},
		{"never-upload", osmxml.WithNeverUpload()},
		{"no-upload-false", osmxml.WithNoUploadFalse()},
		{"never-download", osmxml.WithNeverDownload()},
		{"locked", osmxml.WithLocked()},
	}

	for _, t := range toggles {
		on, err := flags.GetBool(t.flag)
		if err != nil {
			return cfg, err
		}

		if on {
			cfg.opts = append(cfg.opts, t.opt)
		}
	}

	return cfg, nil
}

func runRender(ctx context.Context, in io.Reader, dst io.Writer, cfg renderConfig) (*summary, error) {
	if cfg.save && cfg.store == nil {
		return nil, ErrNoStore
	}

	alloc := model.NewIDAllocator()
	alloc.SetStart(cfg.startID, cfg.positive)

	if cfg.store != nil {
		if _, err := counter.Restore(ctx, cfg.store, alloc); err != nil {
			return nil, err
		}
	}

	m, err := decodeManifest(in)
	if err != nil {
		return nil, err
	}

	c, err := m.build(alloc)
	if err != nil {
		return nil, err
	}

	cw := &countingWriter{w: dst}
	opts := cfg.opts

	var progress *cli.Progress
	if cfg.progress {
		progress = cli.StartProgress(c.Len())
		opts = append(opts, osmxml.WithProgress(progress.Set))
	}

	w, err := osmxml.NewWriter(cw, opts...)
	if err != nil {
		return nil, err
	}

	err = w.WriteCollection(c)
	if cerr := w.Close(); err == nil {
		err = cerr
	}

	progress.Finish()

	if err != nil {
		return nil, err
	}

	slog.Debug("rendered manifest", "entities", c.Len(), "bytes", cw.n)

	if cfg.save {
		if err := cfg.store.Save(ctx, alloc); err != nil {
			return nil, err
		}
	}

	return &summary{
		Nodes:     len(c.Nodes()),
		Ways:      len(c.Ways()),
		Relations: len(c.Relations()),
		Bytes:     cw.n,
		Bounds:    c.Bounds,
		Counter:   alloc.Counter(),
	}, nil
}

func renderSummary(s *summary) {
	fmt.Fprintf(out, "Nodes: %s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(out, "Ways: %s\n", humanize.Comma(int64(s.Ways)))
	fmt.Fprintf(out, "Relations: %s\n", humanize.Comma(int64(s.Relations)))
	fmt.Fprintf(out, "BoundingBox: %s\n", &s.Bounds)
	if s.Bounds.Valid {
		fmt.Fprintf(out, "Longitude: %s to %s\n", model.Degrees(s.Bounds.MinLon), model.Degrees(s.Bounds.MaxLon))
		fmt.Fprintf(out, "Latitude: %s to %s\n", model.Degrees(s.Bounds.MinLat), model.Degrees(s.Bounds.MaxLat))
	}
	fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(s.Bytes))
	fmt.Fprintf(out, "Counter: %d\n", s.Counter)
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)

	return n, err
}
