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

package idcounter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"m4o.io/osmxml/cmd/osmxml/cli"
	"m4o.io/osmxml/counter"
	"m4o.io/osmxml/model"
)

var out io.Writer = os.Stdout

var ErrNoStore = errors.New("no counter store configured: use --id-file or --redis-addr")

func init() {
	cli.RootCmd.AddCommand(counterCmd)
	counterCmd.AddCommand(showCmd, setCmd)

	cli.AddStoreFlags(counterCmd.PersistentFlags())
}

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Inspect or seed the persisted id counter",
	Long:  "Inspect or seed the persisted id counter shared between render runs",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted id counter",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd, func(ctx context.Context, s counter.Store) error {
			return runShow(ctx, s)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Overwrite the persisted id counter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal(err)
		}

		withStore(cmd, func(ctx context.Context, s counter.Store) error {
			return runSet(ctx, s, v)
		})
	},
}

func withStore(cmd *cobra.Command, fn func(context.Context, counter.Store) error) {
	s, release, err := cli.OpenStore(cmd.Context(), cmd.Flags())
	if err != nil {
		log.Fatal(err)
	}
	defer release()

	if s == nil {
		log.Fatal(ErrNoStore)
	}

	if err := fn(cmd.Context(), s); err != nil {
		log.Fatal(err)
	}
}

func runShow(ctx context.Context, s counter.Store) error {
	alloc := model.NewIDAllocator()

	ok, err := counter.Restore(ctx, s, alloc)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprintf(out, "%s: not set\n", s)

		return nil
	}

	fmt.Fprintf(out, "%s: %d\n", s, alloc.Counter())

	return nil
}

func runSet(ctx context.Context, s counter.Store, v int64) error {
	alloc := model.NewIDAllocator()
	alloc.SetStart(v, v > 0)

	return s.Save(ctx, alloc)
}
