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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementSelfClosing(t *testing.T) {
	e := NewElement("bounds", Attr{"minlon", "1."}, Attr{"minlat", "2."})

	s, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, `<bounds minlon="1." minlat="2."/>`, s)
}

func TestElementChildren(t *testing.T) {
	e := NewElement("way", Attr{"visible", "true"}, Attr{"id", "-3"})
	e.Append(NewElement("nd", Attr{"ref", "-1"}))
	e.Append(NewElement("nd", Attr{"ref", "-2"}))

	s, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, `<way visible="true" id="-3"><nd ref="-1"/><nd ref="-2"/></way>`, s)
}

func TestElementSetKeepsPosition(t *testing.T) {
	e := NewElement("node", Attr{"visible", "true"}, Attr{"id", "-1"})
	e.Set("version", "1")
	e.Set("visible", "false")

	assert.Equal(t, []Attr{{"visible", "false"}, {"id", "-1"}, {"version", "1"}}, e.Attrs)

	v, ok := e.Get("visible")
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	_, ok = e.Get("missing")
	assert.False(t, ok)
}

func TestElementEscaping(t *testing.T) {
	e := NewElement("tag", Attr{"k", "name"}, Attr{"v", "Fish & \"Chips\" <b>\n\tnow\r"})

	s, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, `<tag k="name" v="Fish &amp; &quot;Chips&quot; &lt;b&gt;&#10;&#9;now&#13;"/>`, s)
}

func TestElementKeepsUnicode(t *testing.T) {
	e := NewElement("tag", Attr{"k", "name"}, Attr{"v", "Straße 'Ω' 🗺"})

	s, err := e.Render()
	require.NoError(t, err)
	assert.Equal(t, `<tag k="name" v="Straße 'Ω' 🗺"/>`, s)
}

func TestElementInvalidChar(t *testing.T) {
	test_cases := []struct {
		name  string
		value string
	}{
		{"control", "a\x01b"},
		{"nul", "\x00"},
		{"bad utf8", "\xff"},
		{"non character", "\uFFFE"},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewElement("node")
			e.Append(NewElement("tag", Attr{"k", "name"}, Attr{"v", tc.value}))

			s, err := e.Render()
			assert.ErrorIs(t, err, ErrInvalidXMLChar)
			assert.Empty(t, s)
		})
	}
}

func TestElementInvalidName(t *testing.T) {
	test_cases := []string{"", "1abc", "a b", "a=b", "-x", `a"`}

	for _, name := range test_cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewElement("node", Attr{name, "x"}).Render()
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}

	_, err := NewElement("no de").Render()
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewElement("osm", Attr{"xml:lang", "en"}, Attr{"a-b.c", "d"}).Render()
	assert.NoError(t, err)
}

func TestEscapeAttr(t *testing.T) {
	s, err := EscapeAttr("a<b")
	require.NoError(t, err)
	assert.Equal(t, "a&lt;b", s)

	_, err = EscapeAttr("\x02")
	assert.ErrorIs(t, err, ErrInvalidXMLChar)
}
