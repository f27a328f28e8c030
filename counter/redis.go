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
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"m4o.io/osmxml/model"
)

const (
	// DefaultKey is the Redis key used when none is configured.
	DefaultKey = "osmxml:counter"

	connectTimeout = 5 * time.Second
)

// RedisStore keeps the counter as a string value under a single key, so that
// several hosts converting parts of the same dataset share one sequence.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a store using client.  An empty key selects
// DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}

	return &RedisStore{client: client, key: key}
}

// OpenRedis connects to the server at url, which is either a redis:// URL or
// a bare host:port.
func OpenRedis(ctx context.Context, url, key string) (*RedisStore, error) {
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cannot parse redis url: %w", err)
	}

	opts.DialTimeout = connectTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("cannot connect to redis at %s: %w", opts.Addr, err)
	}

	return NewRedisStore(client, key), nil
}

func (s *RedisStore) Load(ctx context.Context, alloc *model.IDAllocator) error {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrNoState, s.key)
	} else if err != nil {
		return fmt.Errorf("cannot get %s: %w", s.key, err)
	}

	if err := alloc.Load(strings.NewReader(v)); err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}

	slog.Info("loaded id counter", "key", s.key, "counter", alloc.Counter())

	return nil
}

func (s *RedisStore) Save(ctx context.Context, alloc *model.IDAllocator) error {
	var b strings.Builder
	if err := alloc.Save(&b); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, b.String(), 0).Err(); err != nil {
		return fmt.Errorf("cannot set %s: %w", s.key, err)
	}

	slog.Info("saved id counter", "key", s.key, "counter", alloc.Counter())

	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) String() string {
	return "redis:" + s.key
}
