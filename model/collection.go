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

// Collection owns the entities of one conversion.  Every entity it creates
// draws its identifier from the same allocator, and every node it creates
// is folded into Bounds.  Parent identifiers recorded on its entities can
// be resolved with Lookup.
type Collection struct {
	Bounds BoundingBox

	alloc     *IDAllocator
	nodes     []*Node
	ways      []*Way
	relations []*Relation
	byID      map[int64]Entity
	positions map[position]*Node
}

// NewCollection creates an empty collection drawing identifiers from alloc.
func NewCollection(alloc *IDAllocator) *Collection {
	return &Collection{
		alloc:     alloc,
		byID:      make(map[int64]Entity),
		positions: make(map[position]*Node),
	}
}

// Allocator returns the allocator the collection draws from.
func (c *Collection) Allocator() *IDAllocator {
	return c.alloc
}

// NewNode creates a node and adds it to the collection.
func (c *Collection) NewNode(x, y float64, tags ...Tag) *Node {
	n := NewNode(c.alloc, x, y, tags...)
	c.nodes = append(c.nodes, n)
	c.byID[n.ID()] = n
	c.Bounds.AddNode(n)

	p := positionOf(n.Lon(), n.Lat())
	if _, ok := c.positions[p]; !ok {
		c.positions[p] = n
	}

	return n
}

// NodeAt returns the first node created at lon, lat.  Positions are compared
// at the 1e-7 degree resolution OSM stores.
func (c *Collection) NodeAt(lon, lat Degrees) (*Node, bool) {
	n, ok := c.positions[positionOf(lon, lat)]

	return n, ok
}

// NewWay creates a way and adds it to the collection.
func (c *Collection) NewWay(tags ...Tag) *Way {
	w := NewWay(c.alloc, tags...)
	c.ways = append(c.ways, w)
	c.byID[w.ID()] = w

	return w
}

// NewRelation creates a relation and adds it to the collection.
func (c *Collection) NewRelation(tags ...Tag) *Relation {
	r := NewRelation(c.alloc, tags...)
	c.relations = append(c.relations, r)
	c.byID[r.ID()] = r

	return r
}

// Link appends child to parent and records parent on child.
func (c *Collection) Link(parent *Way, child *Node) {
	parent.AddNode(child)
	child.AddParent(parent)
}

// LinkMember appends member to parent with role and records parent on member.
func (c *Collection) LinkMember(parent *Relation, member Entity, role string) {
	parent.AddMember(member, role)
	member.AddParent(parent)
}

// Lookup returns the entity with the identifier.
func (c *Collection) Lookup(id int64) (Entity, bool) {
	e, ok := c.byID[id]

	return e, ok
}

// ParentsOf resolves the parents recorded on e.  Parents that do not belong
// to the collection are skipped.
func (c *Collection) ParentsOf(e Entity) []Entity {
	ids := e.Parents()
	parents := make([]Entity, 0, len(ids))

	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			parents = append(parents, p)
		}
	}

	return parents
}

// Nodes returns the nodes in creation order.
func (c *Collection) Nodes() []*Node {
	return c.nodes
}

// Ways returns the ways in creation order.
func (c *Collection) Ways() []*Way {
	return c.ways
}

// Relations returns the relations in creation order.
func (c *Collection) Relations() []*Relation {
	return c.relations
}

// Len returns the number of entities.
func (c *Collection) Len() int {
	return len(c.nodes) + len(c.ways) + len(c.relations)
}
