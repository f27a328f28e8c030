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

package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/pflag"

	"m4o.io/osmxml/counter"
)

const (
	envIDFile    = "OSMXML_ID_FILE"
	envRedisAddr = "OSMXML_REDIS_ADDR"
	envRedisKey  = "OSMXML_REDIS_KEY"
)

var ErrConflictingStores = errors.New("--id-file and --redis-addr are mutually exclusive")

// AddStoreFlags registers the flags selecting where the id counter lives.
func AddStoreFlags(flags *pflag.FlagSet) {
	flags.String("id-file", "", "read and write the id counter from this file (env "+envIDFile+")")
	flags.String("redis-addr", "", "keep the id counter in redis at this address or URL (env "+envRedisAddr+")")
	flags.String("redis-key", "", "redis key holding the id counter (env "+envRedisKey+", default "+counter.DefaultKey+")")
}

// OpenStore returns the store selected by the flags registered with
// AddStoreFlags, falling back to the environment for unset flags.  It
// returns nil when no store is configured.  The returned function releases
// the store.
func OpenStore(ctx context.Context, flags *pflag.FlagSet) (counter.Store, func(), error) {
	path := flagOrEnv(flags, "id-file", envIDFile)
	addr := flagOrEnv(flags, "redis-addr", envRedisAddr)

	switch {
	case path != "" && addr != "":
		return nil, nil, ErrConflictingStores
	case path != "":
		return counter.NewFileStore(path), func() {}, nil
	case addr != "":
		s, err := counter.OpenRedis(ctx, addr, flagOrEnv(flags, "redis-key", envRedisKey))
		if err != nil {
			return nil, nil, err
		}

		return s, func() { _ = s.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

func flagOrEnv(flags *pflag.FlagSet, name, env string) string {
	if v, err := flags.GetString(name); err == nil && v != "" {
		return v
	}

	return os.Getenv(env)
}
