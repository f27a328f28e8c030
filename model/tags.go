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
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Tag is a candidate key/value pair handed to an entity constructor.
type Tag struct {
	Key   string
	Value string
}

// TagsFromMap converts a map into candidate tags ordered by key, so that
// entities built from Go maps serialize deterministically.
func TagsFromMap(m map[string]string) []Tag {
	keys := maps.Keys(m)
	slices.Sort(keys)

	tags := make([]Tag, len(keys))
	for i, k := range keys {
		tags[i] = Tag{Key: k, Value: m[k]}
	}

	return tags
}

// Tags maps keys to one or more values.  Keys iterate in the order they
// were first stored.  The zero value is empty and ready to use.
type Tags struct {
	keys   []string
	values map[string][]string
}

// Len returns the number of keys.
func (t *Tags) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Tags) Keys() []string {
	return slices.Clone(t.keys)
}

// Get returns the values stored for key.
func (t *Tags) Get(key string) []string {
	return slices.Clone(t.values[key])
}

// Has reports whether key is stored.
func (t *Tags) Has(key string) bool {
	_, ok := t.values[key]

	return ok
}

// Joined returns the values of key joined with commas, the form in which
// they are serialized.
func (t *Tags) Joined(key string) string {
	return strings.Join(t.values[key], ",")
}

// Set replaces the values of key.  A new key is appended to the order.
func (t *Tags) Set(key string, values ...string) {
	if t.values == nil {
		t.values = make(map[string][]string)
	}

	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}

	t.values[key] = slices.Clone(values)
}

// Append adds value to the values of key.
func (t *Tags) Append(key string, value string) {
	t.Set(key, append(t.values[key], value)...)
}

// Delete removes key and its values.
func (t *Tags) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}

	delete(t.values, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
}

// Map returns a copy of the tags.
func (t *Tags) Map() map[string][]string {
	m := make(map[string][]string, len(t.keys))
	for _, k := range t.keys {
		m[k] = slices.Clone(t.values[k])
	}

	return m
}

// addNonEmpty stores key → [value] for every candidate with a non-empty
// value.  Empty values are dropped.
func (t *Tags) addNonEmpty(candidates []Tag) {
	for _, c := range candidates {
		if c.Value != "" {
			t.Set(c.Key, c.Value)
		}
	}
}
