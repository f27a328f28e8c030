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

// Package counter persists the state of an IDAllocator between runs so that
// identifiers stay unique across several output files.
package counter

import (
	"context"
	"errors"

	"m4o.io/osmxml/model"
)

// ErrNoState is returned by Load when nothing has been persisted yet.
var ErrNoState = errors.New("no persisted id counter")

// Store loads and saves an allocator's counter.
type Store interface {
	// Load replaces the allocator's counter with the persisted value.
	Load(ctx context.Context, alloc *model.IDAllocator) error

	// Save persists the allocator's current counter.
	Save(ctx context.Context, alloc *model.IDAllocator) error

	// String names the backing location, for logging.
	String() string
}

// Restore loads the counter from s, leaving alloc untouched when nothing has
// been persisted.  It reports whether a value was restored.
func Restore(ctx context.Context, s Store, alloc *model.IDAllocator) (bool, error) {
	err := s.Load(ctx, alloc)
	switch {
	case errors.Is(err, ErrNoState):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}
