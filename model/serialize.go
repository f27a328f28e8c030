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
	"fmt"

	"m4o.io/osmxml/internal/xmlfmt"
)

// MultipolygonTag is written first among the tags of every relation.
var MultipolygonTag = Tag{Key: "type", Value: "multipolygon"}

// Serialize renders the node as a node element with lat and lon formatted
// to precision decimals.
func (n *Node) Serialize(attrs Attributes, precision int) (string, error) {
	lat, err := formatCoordinate(n.Y, precision)
	if err != nil {
		return "", fmt.Errorf("node %d latitude: %w", n.id, err)
	}

	lon, err := formatCoordinate(n.X, precision)
	if err != nil {
		return "", fmt.Errorf("node %d longitude: %w", n.id, err)
	}

	e := n.newElement("node", attrs, xmlfmt.Attr{Name: "lat", Value: lat}, xmlfmt.Attr{Name: "lon", Value: lon})
	n.appendTags(e)

	return render(e, NODE, n.id)
}

// Serialize renders the way as a way element with one nd reference per node.
func (w *Way) Serialize(attrs Attributes, _ int) (string, error) {
	e := w.newElement("way", attrs)

	for i, n := range w.Nodes {
		if n == nil {
			return "", fmt.Errorf("way %d node %d: %w", w.id, i, ErrNilNode)
		}

		e.Append(xmlfmt.NewElement("nd", xmlfmt.Attr{Name: "ref", Value: xmlfmt.FormatID(n.ID())}))
	}

	w.appendTags(e)

	return render(e, WAY, w.id)
}

// Serialize renders the relation as a multipolygon relation element.
func (r *Relation) Serialize(attrs Attributes, _ int) (string, error) {
	e := r.newElement("relation", attrs)

	for i, m := range r.Members {
		t, err := KindOf(m.Entity)
		if err != nil {
			return "", fmt.Errorf("relation %d member %d: %w", r.id, i, err)
		}

		e.Append(xmlfmt.NewElement("member",
			xmlfmt.Attr{Name: "type", Value: t.String()},
			xmlfmt.Attr{Name: "ref", Value: xmlfmt.FormatID(m.Entity.ID())},
			xmlfmt.Attr{Name: "role", Value: m.Role}))
	}

	e.Append(tagElement(MultipolygonTag.Key, MultipolygonTag.Value))
	r.appendTags(e)

	return render(e, RELATION, r.id)
}

// newElement creates the element with the attributes every kind carries,
// then own, then the caller's extra attributes.
func (e *entity) newElement(name string, extra Attributes, own ...xmlfmt.Attr) *xmlfmt.Element {
	el := xmlfmt.NewElement(name,
		xmlfmt.Attr{Name: "visible", Value: "true"},
		xmlfmt.Attr{Name: "id", Value: xmlfmt.FormatID(e.id)})

	for _, a := range own {
		el.Set(a.Name, a.Value)
	}

	for _, a := range extra {
		el.Set(a.Name, a.Value)
	}

	return el
}

func (e *entity) appendTags(el *xmlfmt.Element) {
	for _, k := range e.tags.keys {
		el.Append(tagElement(k, e.tags.Joined(k)))
	}
}

func tagElement(k, v string) *xmlfmt.Element {
	return xmlfmt.NewElement("tag", xmlfmt.Attr{Name: "k", Value: k}, xmlfmt.Attr{Name: "v", Value: v})
}

func render(el *xmlfmt.Element, t EntityType, id int64) (string, error) {
	s, err := el.Render()
	if err != nil {
		return "", fmt.Errorf("%s %d: %w", t, id, err)
	}

	return s, nil
}

// formatCoordinate formats a coordinate for OSM XML.  See xmlfmt.FormatFixed
// for the exact rules.
func formatCoordinate(v float64, precision int) (string, error) {
	s, err := xmlfmt.FormatFixed(v, precision)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPrecisionFormat, err)
	}

	return s, nil
}
