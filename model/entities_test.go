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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmxml/model"
)

// impostor satisfies Entity through embedding but is not one of the known kinds.
type impostor struct {
	*model.Node
}

func TestEntityType(t *testing.T) {
	assert.Equal(t, "node", model.NODE.String())
	assert.Equal(t, "way", model.WAY.String())
	assert.Equal(t, "relation", model.RELATION.String())
	assert.Equal(t, "EntityType(7)", model.EntityType(7).String())
}

func TestKindOf(t *testing.T) {
	alloc := model.NewIDAllocator()

	k, err := model.KindOf(model.NewNode(alloc, 0, 0))
	assert.NoError(t, err)
	assert.Equal(t, model.NODE, k)

	k, err = model.KindOf(model.NewWay(alloc))
	assert.NoError(t, err)
	assert.Equal(t, model.WAY, k)

	k, err = model.KindOf(model.NewRelation(alloc))
	assert.NoError(t, err)
	assert.Equal(t, model.RELATION, k)

	_, err = model.KindOf(impostor{model.NewNode(alloc, 0, 0)})
	assert.ErrorIs(t, err, model.ErrUnknownMemberKind)

	_, err = model.KindOf(nil)
	assert.ErrorIs(t, err, model.ErrUnknownMemberKind)

	for _, e := range []model.Entity{(*model.Node)(nil), (*model.Way)(nil), (*model.Relation)(nil)} {
		_, err = model.KindOf(e)
		assert.ErrorIs(t, err, model.ErrUnknownMemberKind, "%T", e)
	}
}

func TestIDsFollowCreationOrder(t *testing.T) {
	alloc := model.NewIDAllocator()

	n := model.NewNode(alloc, 0, 0)
	w := model.NewWay(alloc)
	r := model.NewRelation(alloc)

	assert.Equal(t, int64(-1), n.ID())
	assert.Equal(t, int64(-2), w.ID())
	assert.Equal(t, int64(-3), r.ID())
}

func TestParents(t *testing.T) {
	alloc := model.NewIDAllocator()

	n := model.NewNode(alloc, 0, 0)
	w1 := model.NewWay(alloc)
	w2 := model.NewWay(alloc)

	assert.Empty(t, n.Parents())

	n.AddParent(w1)
	n.AddParent(w2)
	n.AddParent(w1)

	assert.Equal(t, []int64{w1.ID(), w2.ID()}, n.Parents())
	assert.True(t, n.HasParent(w1))

	n.RemoveParent(w1)
	n.RemoveParent(w1)

	assert.Equal(t, []int64{w2.ID()}, n.Parents())
	assert.False(t, n.HasParent(w1))

	n.RemoveParent(model.NewRelation(alloc))
	assert.Equal(t, []int64{w2.ID()}, n.Parents())
}

func TestParentsSnapshot(t *testing.T) {
	alloc := model.NewIDAllocator()

	n := model.NewNode(alloc, 0, 0)
	w := model.NewWay(alloc)
	n.AddParent(w)

	parents := n.Parents()
	parents[0] = 12345

	assert.Equal(t, []int64{w.ID()}, n.Parents())
}

func TestSelfReferencingRelation(t *testing.T) {
	alloc := model.NewIDAllocator()

	outer := model.NewRelation(alloc)
	inner := model.NewRelation(alloc)

	outer.AddMember(inner, "")
	inner.AddParent(outer)
	inner.AddMember(outer, "")
	outer.AddParent(inner)

	assert.Equal(t, []int64{inner.ID()}, outer.Parents())
	assert.Equal(t, []int64{outer.ID()}, inner.Parents())
}

func TestMemberRole(t *testing.T) {
	alloc := model.NewIDAllocator()

	x := model.NewWay(alloc)
	y := model.NewWay(alloc)
	z := model.NewWay(alloc)

	r := model.NewRelation(alloc)
	r.AddMember(x, "outer")
	r.AddMember(y, "inner")

	assert.Equal(t, "outer", r.MemberRole(x))
	assert.Equal(t, "inner", r.MemberRole(y))
	assert.Equal(t, "", r.MemberRole(z))
}

func TestMemberRoleFirstMatchWins(t *testing.T) {
	alloc := model.NewIDAllocator()

	x := model.NewWay(alloc)

	r := model.NewRelation(alloc)
	r.AddMember(x, "outer")
	r.AddMember(x, "inner")

	assert.Equal(t, "outer", r.MemberRole(x))

	r2 := model.NewRelation(alloc)
	r2.AddMember(x, "")
	r2.AddMember(x, "inner")

	assert.Equal(t, "", r2.MemberRole(x))
}

func TestNodeDegrees(t *testing.T) {
	n := model.NewNode(model.NewIDAllocator(), -0.1277583, 51.5073509)

	assert.Equal(t, model.Degrees(-0.1277583), n.Lon())
	assert.Equal(t, model.Degrees(51.5073509), n.Lat())
}
