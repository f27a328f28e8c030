// Copyright 2017-25 the original author or authors.
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
	"strconv"

	"m4o.io/osmxml/internal/xmlfmt"
)

// BoundingBox accumulates the envelope of everything written to a
// document.  Its bounds are meaningless until Valid is set by the first
// envelope.
type BoundingBox struct {
	Valid  bool
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

// AddEnvelope grows the box to include the envelope.  The first envelope is
// adopted as is.  Callers must pass minX <= maxX and minY <= maxY.
func (b *BoundingBox) AddEnvelope(minX, maxX, minY, maxY float64) {
	if !b.Valid {
		b.Valid = true
		b.MinLon, b.MaxLon, b.MinLat, b.MaxLat = minX, maxX, minY, maxY

		return
	}

	b.MinLon = min(b.MinLon, minX)
	b.MaxLon = max(b.MaxLon, maxX)
	b.MinLat = min(b.MinLat, minY)
	b.MaxLat = max(b.MaxLat, maxY)
}

// AddNode grows the box to include the node.
func (b *BoundingBox) AddNode(n *Node) {
	b.AddEnvelope(n.X, n.X, n.Y, n.Y)
}

// AddBoundingBox grows the box to include o, if o is valid.
func (b *BoundingBox) AddBoundingBox(o *BoundingBox) {
	if o.Valid {
		b.AddEnvelope(o.MinLon, o.MaxLon, o.MinLat, o.MaxLat)
	}
}

// Contains checks if the bounding box contains the lon lat point.
func (b *BoundingBox) Contains(lon, lat Degrees) bool {
	return b.Valid &&
		Degrees(b.MinLon) <= lon && lon <= Degrees(b.MaxLon) &&
		Degrees(b.MinLat) <= lat && lat <= Degrees(b.MaxLat)
}

// Markup renders the box as an OSM bounds element, formatting each bound
// with precision decimals.
func (b *BoundingBox) Markup(precision int) (string, error) {
	if !b.Valid {
		return "", ErrInvalidBounds
	}

	e := xmlfmt.NewElement("bounds")

	for _, bound := range []struct {
		name  string
		value float64
	}{
		{"minlon", b.MinLon},
		{"minlat", b.MinLat},
		{"maxlon", b.MaxLon},
		{"maxlat", b.MaxLat},
	} {
		s, err := formatCoordinate(bound.value, precision)
		if err != nil {
			return "", fmt.Errorf("bounds %s: %w", bound.name, err)
		}

		e.Set(bound.name, s)
	}

	return e.Render()
}

func (b *BoundingBox) String() string {
	if !b.Valid {
		return "[]"
	}

	return fmt.Sprintf("[(%s, %s) (%s, %s)]",
		ftoa(b.MinLon), ftoa(b.MinLat),
		ftoa(b.MaxLon), ftoa(b.MaxLat))
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
