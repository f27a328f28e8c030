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

// Attribute is an extra XML attribute, such as version or timestamp, added
// to every serialized entity.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered list of extra attributes.  When serialized they
// are applied after an entity's own attributes, so a duplicated name takes
// the extra value.
type Attributes []Attribute

// With returns a copy of a carrying name=value.  An existing name keeps its
// position.
func (a Attributes) With(name, value string) Attributes {
	out := make(Attributes, len(a), len(a)+1)
	copy(out, a)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value

			return out
		}
	}

	return append(out, Attribute{Name: name, Value: value})
}
