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
	"unicode/utf8"
)

// ErrInvalidXMLChar is returned when a value holds a character that cannot
// appear in an XML document, or is not valid UTF-8.
var ErrInvalidXMLChar = errors.New("invalid XML character")

// EscapeAttr returns s escaped for use inside a double-quoted attribute.
func EscapeAttr(s string) (string, error) {
	var sb strings.Builder

	if err := escapeAttr(&sb, s); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func escapeAttr(sb *strings.Builder, s string) error {
	for i, w := 0, 0; i < len(s); i += w {
		r, width := utf8.DecodeRuneInString(s[i:])
		w = width

		if r == utf8.RuneError && width == 1 {
			return fmt.Errorf("byte 0x%02x at offset %d: %w", s[i], i, ErrInvalidXMLChar)
		}

		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\n':
			sb.WriteString("&#10;")
		case '\r':
			sb.WriteString("&#13;")
		case '\t':
			sb.WriteString("&#9;")
		default:
			if !isChar(r) {
				return fmt.Errorf("rune %U at offset %d: %w", r, i, ErrInvalidXMLChar)
			}

			sb.WriteString(s[i : i+width])
		}
	}

	return nil
}

// isChar implements the Char production of XML 1.0.
func isChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
