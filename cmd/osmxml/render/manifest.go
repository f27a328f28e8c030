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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"m4o.io/osmxml/model"
)

var (
	ErrDuplicateRef = errors.New("duplicate ref")
	ErrUnknownRef   = errors.New("unknown ref")
	ErrMemberKind   = errors.New("not a node")
	ErrCoordinate   = errors.New("invalid coordinate")
	ErrNoStore      = errors.New("--save-id requires --id-file or --redis-addr")
)

// manifest is a YAML description of entities.  Refs are local names used to
// link entities; identifiers are allocated in the order nodes, ways,
// relations.
type manifest struct {
	Nodes     []manifestNode     `yaml:"nodes"`
	Ways      []manifestWay      `yaml:"ways"`
	Relations []manifestRelation `yaml:"relations"`
}

type manifestNode struct {
	Ref  string            `yaml:"ref"`
	Lon  coordinate        `yaml:"lon"`
	Lat  coordinate        `yaml:"lat"`
	Tags map[string]string `yaml:"tags"`
}

// coordinate is a decimal degree scalar.
type coordinate model.Degrees

func (c *coordinate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: not a scalar", value.Line, ErrCoordinate)
	}

	d, err := model.ParseDegrees(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w: %w", value.Line, ErrCoordinate, err)
	}

	*c = coordinate(d)

	return nil
}

type manifestWay struct {
	Ref   string            `yaml:"ref"`
	Nodes []string          `yaml:"nodes"`
	Tags  map[string]string `yaml:"tags"`
}

type manifestMember struct {
	Ref  string `yaml:"ref"`
	Role string `yaml:"role"`
}

type manifestRelation struct {
	Ref     string            `yaml:"ref"`
	Members []manifestMember  `yaml:"members"`
	Tags    map[string]string `yaml:"tags"`
}

func decodeManifest(r io.Reader) (*manifest, error) {
	var m manifest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode manifest: %w", err)
	}

	return &m, nil
}

// build allocates every entity of m from alloc and links them by ref.
func (m *manifest) build(alloc *model.IDAllocator) (*model.Collection, error) {
	c := model.NewCollection(alloc)
	refs := make(map[string]model.Entity)

	register := func(ref string, e model.Entity) error {
		if ref == "" {
			return nil
		}

		if _, ok := refs[ref]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateRef, ref)
		}

		refs[ref] = e

		return nil
	}

	for _, n := range m.Nodes {
		lon, lat := model.Degrees(n.Lon), model.Degrees(n.Lat)
		if err := model.CheckCoordinate(lon, lat); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Ref, err)
		}

		if dup, ok := c.NodeAt(lon, lat); ok {
			slog.Warn("node shares a position", "ref", n.Ref, "id", dup.ID(), "lon", lon.String(), "lat", lat.String())
		}

		if err := register(n.Ref, c.NewNode(float64(lon), float64(lat), model.TagsFromMap(n.Tags)...)); err != nil {
			return nil, err
		}
	}

	ways := make([]*model.Way, len(m.Ways))
	for i, w := range m.Ways {
		ways[i] = c.NewWay(model.TagsFromMap(w.Tags)...)
		if err := register(w.Ref, ways[i]); err != nil {
			return nil, err
		}
	}

	relations := make([]*model.Relation, len(m.Relations))
	for i, r := range m.Relations {
		relations[i] = c.NewRelation(model.TagsFromMap(r.Tags)...)
		if err := register(r.Ref, relations[i]); err != nil {
			return nil, err
		}
	}

	for i, w := range m.Ways {
		for _, ref := range w.Nodes {
			e, ok := refs[ref]
			if !ok {
				return nil, fmt.Errorf("way %q: %w: %q", w.Ref, ErrUnknownRef, ref)
			}

			n, ok := e.(*model.Node)
			if !ok {
				return nil, fmt.Errorf("way %q: %q: %w", w.Ref, ref, ErrMemberKind)
			}

			c.Link(ways[i], n)
		}
	}

	for i, r := range m.Relations {
		for _, member := range r.Members {
			e, ok := refs[member.Ref]
			if !ok {
				return nil, fmt.Errorf("relation %q: %w: %q", r.Ref, ErrUnknownRef, member.Ref)
			}

			c.LinkMember(relations[i], e, member.Role)
		}
	}

	return c, nil
}
