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

// Package model contains the in-memory OpenStreetMap entities produced by a
// conversion and their XML serialization.
package model

import (
	"fmt"
	"slices"
)

// Entity is a node, way or relation.  The set of kinds is closed: any other
// implementation is rejected when it is serialized as a relation member.
type Entity interface {
	isEntity() // prevents extensions

	// ID returns the identifier allocated when the entity was created.
	ID() int64

	// Tags returns the entity's tags.  The returned value may be modified.
	Tags() *Tags

	// AddParent records that p references this entity.
	AddParent(p Entity)

	// RemoveParent forgets p, if it was recorded.
	RemoveParent(p Entity)

	// HasParent reports whether p is recorded as a parent.
	HasParent(p Entity) bool

	// Parents returns the identifiers of the recorded parents in the order
	// they were added.
	Parents() []int64

	// Serialize renders the entity as an OSM XML element.  attrs are applied
	// after the entity's own attributes and precision is the number of
	// decimals used for coordinates.
	Serialize(attrs Attributes, precision int) (string, error)
}

// EntityType is an enumeration of entity kinds.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota

	// WAY denotes that the member is a way.
	WAY

	// RELATION denotes that the member is a relation.
	RELATION
)

// String returns the name used for the kind in OSM XML.
func (t EntityType) String() string {
	switch t {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	default:
		return fmt.Sprintf("EntityType(%d)", int32(t))
	}
}

// KindOf classifies e.  Only *Node, *Way and *Relation are known.
func KindOf(e Entity) (EntityType, error) {
	switch v := e.(type) {
	case *Node:
		if v != nil {
			return NODE, nil
		}
	case *Way:
		if v != nil {
			return WAY, nil
		}
	case *Relation:
		if v != nil {
			return RELATION, nil
		}
	}

	return 0, fmt.Errorf("%w: %T", ErrUnknownMemberKind, e)
}

// entity holds what is common to all kinds.  Parents are tracked by
// identifier so a child never keeps its parents alive.
type entity struct {
	id      int64
	tags    Tags
	parents []int64
}

func newEntity(alloc *IDAllocator, tags []Tag) entity {
	e := entity{id: alloc.Allocate()}
	e.tags.addNonEmpty(tags)

	return e
}

func (e *entity) isEntity() {}

func (e *entity) ID() int64 {
	return e.id
}

func (e *entity) Tags() *Tags {
	return &e.tags
}

func (e *entity) AddParent(p Entity) {
	if !e.HasParent(p) {
		e.parents = append(e.parents, p.ID())
	}
}

func (e *entity) RemoveParent(p Entity) {
	e.parents = slices.DeleteFunc(e.parents, func(id int64) bool { return id == p.ID() })
}

func (e *entity) HasParent(p Entity) bool {
	return slices.Contains(e.parents, p.ID())
}

func (e *entity) Parents() []int64 {
	return slices.Clone(e.parents)
}

// Node represents a specific point on the earth's surface.  X is the
// longitude and Y the latitude, in decimal degrees.
type Node struct {
	entity
	X float64
	Y float64
}

var _ Entity = (*Node)(nil)

// NewNode creates a node, allocating its identifier from alloc.  Tags with
// empty values are dropped.
func NewNode(alloc *IDAllocator, x, y float64, tags ...Tag) *Node {
	return &Node{entity: newEntity(alloc, tags), X: x, Y: y}
}

// Lon returns the longitude.
func (n *Node) Lon() Degrees {
	return Degrees(n.X)
}

// Lat returns the latitude.
func (n *Node) Lat() Degrees {
	return Degrees(n.Y)
}

// Way is an ordered list of nodes that define a polyline or the ring of a
// polygon.  The way does not own its nodes.
type Way struct {
	entity
	Nodes []*Node
}

var _ Entity = (*Way)(nil)

// NewWay creates an empty way, allocating its identifier from alloc.
func NewWay(alloc *IDAllocator, tags ...Tag) *Way {
	return &Way{entity: newEntity(alloc, tags)}
}

// AddNode appends n to the way.  Parent bookkeeping is left to the caller.
func (w *Way) AddNode(n *Node) {
	w.Nodes = append(w.Nodes, n)
}

// Member is an entity referenced by a relation, with its role.
type Member struct {
	Entity Entity
	Role   string
}

// Relation documents a relationship between nodes, ways and other
// relations.  It is always written as a multipolygon.
type Relation struct {
	entity
	Members []Member
}

var _ Entity = (*Relation)(nil)

// NewRelation creates an empty relation, allocating its identifier from alloc.
func NewRelation(alloc *IDAllocator, tags ...Tag) *Relation {
	return &Relation{entity: newEntity(alloc, tags)}
}

// AddMember appends e with role.  Parent bookkeeping is left to the caller.
func (r *Relation) AddMember(e Entity, role string) {
	r.Members = append(r.Members, Member{Entity: e, Role: role})
}

// MemberRole returns the role of the first member that is e, or "" when e
// is not a member.
func (r *Relation) MemberRole(e Entity) string {
	for _, m := range r.Members {
		if m.Entity == e {
			return m.Role
		}
	}

	return ""
}
