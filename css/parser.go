// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package css

import (
	"strings"
	"unicode"
)

// Declaration is a single "property: value" pair found by [ParseStyle].
// Offsets are byte offsets.
type Declaration struct {
	// SourcePosition is the offset of the declaration in the input.
	SourcePosition int
	// Position is the length of the output produced before the declaration.
	Position int
	// Name is the trimmed property name.
	Name string
	// Value is the trimmed property value.
	Value string
	// Source is the trimmed text of the whole declaration.
	Source string
}

// ParseStyle splits a list of CSS declarations, like the contents
// of a style attribute, and calls onDecl for each one.
// Non-empty results of onDecl are each followed by "; "
// and the trimmed concatenation is returned.
//
// Declarations end at a ';' outside of parentheses or at a line feed.
// Comments are skipped along with the text before them in the same declaration;
// an unterminated comment ends the list.
// Declarations without a ':' or with an empty property name are dropped.
func ParseStyle(s string, onDecl func(Declaration) string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}

	sb := new(strings.Builder)
	lastPos := 0
	inParens := false
	endDecl := func(i int) {
		if !inParens {
			source := strings.TrimSpace(s[lastPos:i])
			if name, value, ok := strings.Cut(source, ":"); ok {
				name = strings.TrimSpace(name)
				value = strings.TrimSpace(value)
				if name != "" {
					ret := onDecl(Declaration{
						SourcePosition: lastPos,
						Position:       sb.Len(),
						Name:           name,
						Value:          value,
						Source:         source,
					})
					if ret != "" {
						sb.WriteString(ret)
						sb.WriteString("; ")
					}
				}
			}
		}
		lastPos = i + 1
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			j := strings.Index(s[i+2:], "*/")
			if j < 0 {
				return strings.TrimSpace(sb.String())
			}
			i += 2 + j + 1
			lastPos = i + 1
			inParens = false
		case c == '(':
			inParens = true
		case c == ')':
			inParens = false
		case c == ';':
			if !inParens {
				endDecl(i)
			}
		case c == '\n':
			endDecl(i)
		}
	}
	return strings.TrimSpace(sb.String())
}
