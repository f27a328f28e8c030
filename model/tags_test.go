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

func TestConstructionDropsEmptyTags(t *testing.T) {
	alloc := model.NewIDAllocator()

	w := model.NewWay(alloc,
		model.Tag{Key: "name", Value: "Main St"},
		model.Tag{Key: "note", Value: ""},
		model.Tag{Key: "ref"})

	assert.Equal(t, map[string][]string{"name": {"Main St"}}, w.Tags().Map())
	assert.Equal(t, []string{"name"}, w.Tags().Keys())
	assert.False(t, w.Tags().Has("note"))
}

func TestConstructionKeepsOrder(t *testing.T) {
	n := model.NewNode(model.NewIDAllocator(), 0, 0,
		model.Tag{Key: "z", Value: "1"},
		model.Tag{Key: "a", Value: "2"},
		model.Tag{Key: "m", Value: "3"})

	assert.Equal(t, []string{"z", "a", "m"}, n.Tags().Keys())
}

func TestConstructionLaterDuplicateReplaces(t *testing.T) {
	n := model.NewNode(model.NewIDAllocator(), 0, 0,
		model.Tag{Key: "name", Value: "first"},
		model.Tag{Key: "ref", Value: "A1"},
		model.Tag{Key: "name", Value: "second"})

	assert.Equal(t, []string{"name", "ref"}, n.Tags().Keys())
	assert.Equal(t, []string{"second"}, n.Tags().Get("name"))
}

func TestTagsFromMap(t *testing.T) {
	tags := model.TagsFromMap(map[string]string{"name": "Main St", "highway": "residential", "note": ""})

	assert.Equal(t, []model.Tag{
		{Key: "highway", Value: "residential"},
		{Key: "name", Value: "Main St"},
		{Key: "note", Value: ""},
	}, tags)

	w := model.NewWay(model.NewIDAllocator(), tags...)
	assert.Equal(t, []string{"highway", "name"}, w.Tags().Keys())
}

func TestTagsMutation(t *testing.T) {
	var tags model.Tags

	assert.Equal(t, 0, tags.Len())
	assert.Nil(t, tags.Get("missing"))

	tags.Append("name", "A")
	tags.Append("name", "B")
	tags.Set("ref", "1")
	tags.Append("name", "C")

	assert.Equal(t, 2, tags.Len())
	assert.Equal(t, []string{"name", "ref"}, tags.Keys())
	assert.Equal(t, []string{"A", "B", "C"}, tags.Get("name"))
	assert.Equal(t, "A,B,C", tags.Joined("name"))

	tags.Set("name", "X")
	assert.Equal(t, []string{"name", "ref"}, tags.Keys())
	assert.Equal(t, "X", tags.Joined("name"))

	tags.Delete("name")
	tags.Delete("missing")
	assert.Equal(t, []string{"ref"}, tags.Keys())
	assert.False(t, tags.Has("name"))
}

func TestTagsCopies(t *testing.T) {
	var tags model.Tags
	tags.Set("name", "A")

	tags.Keys()[0] = "changed"
	tags.Get("name")[0] = "changed"
	tags.Map()["name"][0] = "changed"

	assert.Equal(t, []string{"name"}, tags.Keys())
	assert.Equal(t, []string{"A"}, tags.Get("name"))
}
