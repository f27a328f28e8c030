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

package counter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmxml/counter"
	"m4o.io/osmxml/model"
)

func newRedisStore(t *testing.T, key string) (*counter.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s := counter.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), key)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s, mr
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ids.txt")
	s := counter.NewFileStore(path)

	alloc := model.NewIDAllocator()
	alloc.Allocate()
	alloc.Allocate()
	alloc.Allocate()

	require.NoError(t, s.Save(ctx, alloc))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-3", string(b))

	restored := model.NewIDAllocator()
	require.NoError(t, s.Load(ctx, restored))
	assert.Equal(t, int64(-4), restored.Allocate())
	assert.Equal(t, "file:"+path, s.String())
}

func TestFileStoreMissing(t *testing.T) {
	s := counter.NewFileStore(filepath.Join(t.TempDir(), "absent.txt"))

	alloc := model.NewIDAllocator()
	err := s.Load(context.Background(), alloc)
	assert.ErrorIs(t, err, counter.ErrNoState)

	ok, err := counter.Restore(context.Background(), s, alloc)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), alloc.Counter())
}

func TestFileStoreCorrupt(t *testing.T) {
	test_cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"text", "abc\n"},
		{"too long", "123456789012345678901234"},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ids.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			alloc := model.NewIDAllocator()
			alloc.SetStart(-7, false)

			_, err := counter.Restore(context.Background(), counter.NewFileStore(path), alloc)
			assert.ErrorIs(t, err, model.ErrInvalidPersistedState)
			assert.Equal(t, int64(-7), alloc.Counter())
		})
	}
}

func TestFileStoreTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("-100\nignored\n"), 0o644))

	alloc := model.NewIDAllocator()
	ok, err := counter.Restore(context.Background(), counter.NewFileStore(path), alloc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(-101), alloc.Allocate())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, "")

	alloc := model.NewIDAllocator()
	alloc.SetStart(41, true)
	alloc.Allocate()

	require.NoError(t, s.Save(ctx, alloc))

	v, err := mr.Get(counter.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	restored := model.NewIDAllocator()
	restored.SetStart(0, true)
	require.NoError(t, s.Load(ctx, restored))
	assert.Equal(t, int64(43), restored.Allocate())
	assert.Equal(t, "redis:"+counter.DefaultKey, s.String())
}

func TestRedisStoreMissing(t *testing.T) {
	s, _ := newRedisStore(t, "custom")

	err := s.Load(context.Background(), model.NewIDAllocator())
	assert.ErrorIs(t, err, counter.ErrNoState)
}

func TestRedisStoreCorrupt(t *testing.T) {
	s, mr := newRedisStore(t, "custom")
	require.NoError(t, mr.Set("custom", "not a number"))

	err := s.Load(context.Background(), model.NewIDAllocator())
	assert.ErrorIs(t, err, model.ErrInvalidPersistedState)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, url := range []string{mr.Addr(), "redis://" + mr.Addr()} {
		s, err := counter.OpenRedis(context.Background(), url, "")
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	_, err := counter.OpenRedis(context.Background(), "http://%zz", "")
	assert.Error(t, err)
}
