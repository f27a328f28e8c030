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
	"errors"

	"m4o.io/osmxml/internal/xmlfmt"
)

var (
	// ErrInvalidPersistedState is returned when a persisted ID counter
	// cannot be parsed as a signed decimal integer.
	ErrInvalidPersistedState = errors.New("invalid persisted id counter")

	// ErrUnknownMemberKind is returned when a relation member is not a
	// non-nil *Node, *Way or *Relation.
	ErrUnknownMemberKind = errors.New("unknown relation member kind")

	// ErrNilNode is returned when a way refers to a nil node.
	ErrNilNode = errors.New("nil way node")

	// ErrCoordinateRange is returned when a longitude lies outside
	// [-180, 180] or a latitude outside [-90, 90].
	ErrCoordinateRange = errors.New("coordinate out of range")

	// ErrPrecisionFormat is returned when a coordinate cannot be formatted,
	// either because it is not finite or the precision is negative.
	ErrPrecisionFormat = errors.New("cannot format coordinate")

	// ErrInvalidBounds is returned when markup is requested from a bounding
	// box that has never been given an envelope.
	ErrInvalidBounds = errors.New("bounding box has no envelope")

	// ErrInvalidXMLChar is returned when a tag, role or attribute holds text
	// that cannot appear in an XML document.
	ErrInvalidXMLChar = xmlfmt.ErrInvalidXMLChar

	// ErrInvalidName is returned when an extra attribute name is not a
	// valid XML name.
	ErrInvalidName = xmlfmt.ErrInvalidName
)
