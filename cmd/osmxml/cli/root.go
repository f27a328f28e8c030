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
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envLogLevel  = "OSMXML_LOG_LEVEL"
	envLogFormat = "OSMXML_LOG_FORMAT"
)

// RootCmd is the command every subcommand registers itself with.
var RootCmd = &cobra.Command{
	Use:   "osmxml",
	Short: "Write OpenStreetMap XML documents",
	Long:  "Write OpenStreetMap XML documents and manage the persisted entity id counter",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		LoadEnv()
		slog.SetDefault(NewLogger())
	},
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// LoadEnv reads .env files from the working directory, if present.  Values
// already in the environment win.
func LoadEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(".osmxml", ".env"))
}

// NewLogger returns a logger writing to stderr with the level and format
// taken from the environment.
func NewLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv(envLogLevel)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if strings.ToLower(os.Getenv(envLogFormat)) == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(h)
}
