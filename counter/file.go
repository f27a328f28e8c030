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

package counter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"m4o.io/osmxml/model"
)

// FileStore keeps the counter as a single decimal line in a text file.
type FileStore struct {
	Path string
}

var _ Store = FileStore{}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) FileStore {
	return FileStore{Path: path}
}

func (s FileStore) Load(_ context.Context, alloc *model.IDAllocator) error {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoState, s.Path)
	} else if err != nil {
		return fmt.Errorf("cannot open id file %s: %w", s.Path, err)
	}
	defer f.Close()

	if err := alloc.Load(f); err != nil {
		return fmt.Errorf("%s: %w", s.Path, err)
	}

	slog.Info("loaded id counter", "path", s.Path, "counter", alloc.Counter())

	return nil
}

func (s FileStore) Save(_ context.Context, alloc *model.IDAllocator) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("cannot create id file %s: %w", s.Path, err)
	}

	if err := alloc.Save(f); err != nil {
		_ = f.Close()

		return fmt.Errorf("%s: %w", s.Path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close id file %s: %w", s.Path, err)
	}

	slog.Info("saved id counter", "path", s.Path, "counter", alloc.Counter())

	return nil
}

func (s FileStore) String() string {
	return "file:" + s.Path
}
