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

package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// MaxPersistedLength is the number of bytes read from a persisted counter.
const MaxPersistedLength = 20

// IDAllocator hands out entity identifiers from a single signed counter.
// Each allocation moves the counter one step, downwards by default, so
// identifiers are never reused during the allocator's lifetime.
//
// The zero value starts at 0 and counts downwards.  An IDAllocator is safe
// for concurrent use.
type IDAllocator struct {
	mu       sync.Mutex
	counter  int64
	positive bool
}

// NewIDAllocator returns an allocator whose first identifier is -1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// SetStart resets the counter to start and fixes the direction.  Identifiers
// already handed out are not affected.
func (a *IDAllocator) SetStart(start int64, positive bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counter = start
	a.positive = positive
}

// Allocate steps the counter and returns the new value.
func (a *IDAllocator) Allocate() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counter += a.step()

	return a.counter
}

// Counter returns the last allocated value, or the start value when nothing
// has been allocated since the counter was set.
func (a *IDAllocator) Counter() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.counter
}

// Step returns +1 or -1.
func (a *IDAllocator) Step() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.step()
}

func (a *IDAllocator) step() int64 {
	if a.positive {
		return 1
	}

	return -1
}

// Load restores the counter from the first line of r, reading at most
// MaxPersistedLength bytes.  The direction is left unchanged.
func (a *IDAllocator) Load(r io.Reader) error {
	line, err := bufio.NewReader(io.LimitReader(r, MaxPersistedLength)).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("cannot read id counter: %w", err)
	}

	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPersistedState, line, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.counter = v

	return nil
}

// Save writes the counter to w as a bare decimal string.
func (a *IDAllocator) Save(w io.Writer) error {
	if _, err := io.WriteString(w, strconv.FormatInt(a.Counter(), 10)); err != nil {
		return fmt.Errorf("cannot write id counter: %w", err)
	}

	return nil
}
