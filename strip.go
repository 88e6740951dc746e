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

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	commentStart = "<!--"
	commentEnd   = "-->"
)

// StripCommentTag removes HTML comments from s.
// The search for "-->" starts at the comment's "<!--",
// so "<!-->" is a complete comment.
// An unterminated comment removes the rest of s.
func StripCommentTag(s string) string {
	sb := new(strings.Builder)
	for lastPos := 0; lastPos < len(s); {
		i := strings.Index(s[lastPos:], commentStart)
		if i < 0 {
			sb.WriteString(s[lastPos:])
			break
		}
		i += lastPos
		sb.WriteString(s[lastPos:i])
		j := strings.Index(s[i:], commentEnd)
		if j < 0 {
			break
		}
		lastPos = i + j + len(commentEnd)
	}
	return sb.String()
}

// StripBlankChar removes invisible characters from s:
// C0 control characters other than tab, carriage return, and line feed,
// and DEL. Leading and trailing whitespace of the whole document is trimmed.
func StripBlankChar(s string) string {
	s, _, _ = transform.String(runes.Remove(runes.Predicate(isBlankChar)), s)
	return strings.TrimSpace(s)
}

func isBlankChar(r rune) bool {
	return isControl(r) && r != '\t' && r != '\r' && r != '\n'
}

// Markers written in place of tags whose bodies are stripped.
// Open markers that are never closed stay in the output.
const (
	removedOpenMarker  = "[removed]"
	removedCloseMarker = "[/removed]"
)

// AllTags is the [Options.StripIgnoredTagBody] entry
// that matches every ignored tag.
const AllTags = "*"

// bodyStripper tracks the output regions between ignored open and close tags
// during a single call to [*Filter.Process].
type bodyStripper struct {
	tags  tagSet
	open  []int
	spans []span
}

// span is a half-open range of output offsets.
type span struct {
	start, end int
}

// tagSet is a set of tag names. A nil set matches every tag.
type tagSet map[string]struct{}

func newTagSet(names []string) tagSet {
	set := make(tagSet, len(names))
	for _, name := range names {
		if name == AllTags {
			return nil
		}
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

func (set tagSet) has(name string) bool {
	if set == nil {
		return true
	}
	_, ok := set[name]
	return ok
}

// mark returns the marker to write for an ignored tag
// and records the region to remove.
// A close tag ends the region started by the oldest open tag still pending.
// A close tag with no pending open tag removes only its own marker.
func (bs *bodyStripper) mark(info TagInfo) string {
	if !info.IsClosing {
		bs.open = append(bs.open, info.Position)
		return removedOpenMarker
	}
	s := span{
		start: info.Position,
		end:   info.Position + len(removedCloseMarker),
	}
	if len(bs.open) > 0 {
		s.start = bs.open[0]
		bs.open = bs.open[:0]
	}
	bs.spans = append(bs.spans, s)
	return removedCloseMarker
}

// remove cuts the recorded regions out of the output s.
func (bs *bodyStripper) remove(s string) string {
	if len(bs.spans) == 0 {
		return s
	}
	sb := new(strings.Builder)
	lastPos := 0
	for _, sp := range bs.spans {
		sb.WriteString(s[lastPos:sp.start])
		lastPos = sp.end
	}
	sb.WriteString(s[lastPos:])
	return sb.String()
}
