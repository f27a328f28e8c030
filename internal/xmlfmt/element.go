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

package xmlfmt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned when an element or attribute name is not a
// valid XML name.
var ErrInvalidName = errors.New("invalid XML name")

// Attr is a single attribute of an Element.
type Attr struct {
	Name  string
	Value string
}

// Element is a minimal XML element tree.  Attributes keep the order in which
// they were first set and children render in append order.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// NewElement creates an element with the given attributes, applied in order
// through Set.
func NewElement(name string, attrs ...Attr) *Element {
	e := &Element{Name: name, Attrs: make([]Attr, 0, len(attrs))}
	for _, a := range attrs {
		e.Set(a.Name, a.Value)
	}

	return e
}

// Set assigns an attribute.  An existing attribute keeps its position and
// takes the new value; a new one is appended.
func (e *Element) Set(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value

			return
		}
	}

	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Get returns the value of the named attribute.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Append adds a child element.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// Render serializes the element tree.  Elements without children are
// written self-closing.  Nothing is returned unless the whole tree is valid.
func (e *Element) Render() (string, error) {
	var sb strings.Builder

	if err := e.render(&sb); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (e *Element) render(sb *strings.Builder) error {
	if !isName(e.Name) {
		return fmt.Errorf("element %q: %w", e.Name, ErrInvalidName)
	}

	sb.WriteByte('<')
	sb.WriteString(e.Name)

	for _, a := range e.Attrs {
		if !isName(a.Name) {
			return fmt.Errorf("attribute %q of <%s>: %w", a.Name, e.Name, ErrInvalidName)
		}

		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)

		if err := escapeAttr(sb, a.Value); err != nil {
			return fmt.Errorf("attribute %q of <%s>: %w", a.Name, e.Name, err)
		}

		sb.WriteByte('"')
	}

	if len(e.Children) == 0 {
		sb.WriteString("/>")

		return nil
	}

	sb.WriteByte('>')

	for _, c := range e.Children {
		if err := c.render(sb); err != nil {
			return err
		}
	}

	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteByte('>')

	return nil
}

// isName reports whether s is usable as an element or attribute name.  The
// check is restricted to the ASCII subset of the XML name production.
func isName(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == ':':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}

	return true
}
