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

package xss

import (
	"strings"
)

// Tag is a single tag found by [ParseTag].
// Offsets are byte offsets.
type Tag struct {
	// SourcePosition is the offset of the tag's '<' in the input.
	SourcePosition int
	// Position is the length of the output produced before the tag.
	Position int
	// Name is the lowercased tag name without any slashes.
	Name string
	// HTML is the raw text of the tag, including its delimiters.
	HTML string
	// Closing is true if the tag starts with "</".
	Closing bool
}

// ParseTag scans s for tags and returns the rewritten document.
// Text outside of tags is passed through escape.
// For every tag, onTag is called and its result replaces the tag.
// If onTag returns false, the raw tag text is copied unchanged.
//
// A tag starts at '<' and ends at the next '>' that is not inside
// an attribute value quoted with ' or ". A quote only opens a value
// when the nearest non-whitespace byte before it is '='.
// A tag that is still open at the end of s ends at its last byte,
// unless a quoted value is still open,
// in which case the rest of s is treated as text.
// A '<' inside a tag restarts the tag at that position
// and the text before it is escaped.
func ParseTag(s string, onTag func(Tag) (string, bool), escape func(string) string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	tagStart := -1
	var quote byte
	lastPos := 0

scan:
	for pos := 0; pos < len(s); pos++ {
		c := s[pos]
		if tagStart < 0 {
			if c == '<' {
				tagStart = pos
			}
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '<':
			sb.WriteString(escape(s[lastPos:pos]))
			tagStart = pos
			lastPos = pos
		case c == '>' || pos == len(s)-1:
			sb.WriteString(escape(s[lastPos:tagStart]))
			raw := s[tagStart : pos+1]
			tag := Tag{
				SourcePosition: tagStart,
				Position:       sb.Len(),
				Name:           tagName(raw),
				HTML:           raw,
				Closing:        strings.HasPrefix(raw, "</"),
			}
			if repl, ok := onTag(tag); ok {
				sb.WriteString(repl)
			} else {
				sb.WriteString(raw)
			}
			lastPos = pos + 1
			tagStart = -1
		case c == '"' || c == '\'':
			for j := pos - 1; j >= 0; j-- {
				if s[j] == '=' {
					quote = c
					continue scan
				}
				if !isSpace(s[j]) {
					break
				}
			}
		}
	}
	if lastPos < len(s) {
		sb.WriteString(escape(s[lastPos:]))
	}
	return sb.String()
}

// tagName returns the lowercased name of the raw tag html.
func tagName(html string) string {
	var name string
	if i := spaceIndex(html); i < 0 {
		name = html[1 : len(html)-1]
	} else {
		name = html[1 : i+1]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimSuffix(name, "/")
	return name
}

// splitAttrs returns the attribute text of the raw tag html
// and whether the tag ends with "/>".
func splitAttrs(html string) (attrs string, selfClosing bool) {
	i := spaceIndex(html)
	if i < 0 {
		return "", len(html) >= 2 && html[len(html)-2] == '/'
	}
	if i+1 < len(html)-1 {
		attrs = strings.TrimSpace(html[i+1 : len(html)-1])
	}
	if strings.HasSuffix(attrs, "/") {
		attrs = strings.TrimSpace(attrs[:len(attrs)-1])
		selfClosing = true
	}
	return attrs, selfClosing
}

// ParseAttr splits the attribute text of a tag into name/value pairs.
// onAttr is called once per attribute with the cleaned, lowercased name
// and the unquoted value ("" for attributes without a value).
// Non-empty results of onAttr are joined with single spaces.
//
// Names keep only ASCII letters, digits, and the bytes `\_:.-`.
// Attributes whose name becomes empty are dropped without calling onAttr.
// A quoted value with no closing quote runs to the end of s.
func ParseAttr(s string, onAttr func(name, value string) string) string {
	// buf is rewritten in place once whitespace is seen,
	// so it must not alias s.
	buf := []byte(s)
	var attrs []string
	add := func(name, value string) {
		name = attrName(name)
		if name == "" {
			return
		}
		if ret := onAttr(name, value); ret != "" {
			attrs = append(attrs, ret)
		}
	}

	lastPos := 0
	lastMarkPos := -1
	pendingName := ""
	hasName := false
	normalized := false
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if !hasName && c == '=' {
			pendingName = string(buf[lastPos:i])
			hasName = true
			lastPos = i + 1
			if lastPos < len(buf) && isQuote(buf[lastPos]) {
				lastMarkPos = lastPos
			} else {
				lastMarkPos = nextQuote(buf, i+1)
			}
			continue
		}
		if hasName && i == lastMarkPos {
			j := indexByteFrom(buf, c, i+1)
			if j < 0 {
				break
			}
			add(pendingName, strings.TrimSpace(string(buf[lastMarkPos+1:j])))
			hasName = false
			i = j
			lastPos = i + 1
			continue
		}
		if !isSpace(c) {
			continue
		}

		if !normalized {
			for k, b := range buf {
				if isSpace(b) {
					buf[k] = ' '
				}
			}
			normalized = true
		}
		if !hasName {
			j := nextEqual(buf, i)
			if j < 0 {
				add(strings.TrimSpace(string(buf[lastPos:i])), "")
				lastPos = i + 1
				continue
			}
			i = j - 1
			continue
		}
		if prevEqual(buf, i-1) < 0 {
			if j := nextEqual(buf, i); j >= 0 && j < len(buf) {
				// "key = key = value": the bare token is not a value.
				i = j
				lastPos = j + 1
				if lastPos < len(buf) && isQuote(buf[lastPos]) {
					lastMarkPos = lastPos
				} else {
					lastMarkPos = nextQuote(buf, j+1)
				}
				continue
			}
			add(pendingName, stripQuoteWrap(strings.TrimSpace(string(buf[lastPos:i]))))
			hasName = false
			lastPos = i + 1
		}
	}

	if lastPos < len(buf) {
		if !hasName {
			add(string(buf[lastPos:]), "")
		} else {
			add(pendingName, stripQuoteWrap(strings.TrimSpace(string(buf[lastPos:]))))
		}
	}
	return strings.TrimSpace(strings.Join(attrs, " "))
}

// nextQuote returns the index of the first quote at or after i,
// skipping spaces. It returns -1 if some other byte comes first
// and len(buf) if only spaces remain.
func nextQuote(buf []byte, i int) int {
	for ; i < len(buf); i++ {
		switch c := buf[i]; {
		case c == ' ':
		case isQuote(c):
			return i
		default:
			return -1
		}
	}
	return len(buf)
}

// nextEqual returns the index of the first '=' at or after i,
// skipping spaces. It returns -1 if some other byte comes first
// and len(buf) if only spaces remain.
func nextEqual(buf []byte, i int) int {
	for ; i < len(buf); i++ {
		switch buf[i] {
		case ' ':
		case '=':
			return i
		default:
			return -1
		}
	}
	return len(buf)
}

// prevEqual walks backward from i over spaces.
// It returns the index of a '=' if one is found,
// -1 if some other byte is found,
// and 0 if the walk reaches the start of buf.
func prevEqual(buf []byte, i int) int {
	for ; i > 0; i-- {
		switch buf[i] {
		case ' ':
		case '=':
			return i
		default:
			return -1
		}
	}
	return 0
}

func indexByteFrom(buf []byte, c byte, i int) int {
	for ; i < len(buf); i++ {
		if buf[i] == c {
			return i
		}
	}
	return -1
}

// attrName trims and lowercases an attribute name,
// removing bytes that cannot appear in one.
func attrName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + ('a' - 'A')
		case r == '\\' || r == '_' || r == ':' || r == '.' || r == '-':
			return r
		default:
			return -1
		}
	}, name)
}

func stripQuoteWrap(s string) string {
	switch {
	case s == "" || !isQuote(s[0]) || s[len(s)-1] != s[0]:
		return s
	case len(s) == 1:
		// A lone quote wraps nothing.
		return ""
	default:
		return s[1 : len(s)-1]
	}
}

func spaceIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			return i
		}
	}
	return -1
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// isSpace reports whether c is an ASCII whitespace byte.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}
