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

// Package xss filters untrusted HTML against a whitelist
// of tags and attributes to prevent cross-site scripting.
//
// The filter does not build a document tree.
// It makes a single pass over the input,
// rewriting whitelisted tags with their allowed attributes
// and escaping everything else,
// so the output is safe to place into an HTML element's content.
// Style attributes are further filtered
// by the CSS declaration whitelist in package [zombiezen.com/go/xss/css].
//
// Every decision the filter makes can be overridden with hooks.
// A hook returns false to leave the decision to the filter
// or true to substitute its own text.
package xss

import (
	"log/slog"
	"strings"

	"zombiezen.com/go/xss/css"
)

// TagInfo describes the tag passed to a [TagHook].
type TagInfo struct {
	// SourcePosition is the byte offset of the tag in the filter's input.
	SourcePosition int
	// Position is the byte offset in the output where the tag's replacement will be written.
	Position int
	// IsClosing is true for tags like "</a>".
	IsClosing bool
	// IsWhite is true if the tag is in the whitelist.
	IsWhite bool
}

// TagHook is called with a lowercased tag name
// and the tag's raw text.
// Returning false defers to the next step of the filter.
type TagHook func(tag, html string, info TagInfo) (string, bool)

// AttrHook is called with a lowercased tag name and attribute name
// and the attribute's raw, unquoted value.
// Returning false defers to the next step of the filter.
// Returning an empty string with true removes the attribute.
type AttrHook func(tag, name, value string, isWhite bool) (string, bool)

// SafeAttrValueFunc returns the escaped form of a whitelisted attribute's value,
// or the empty string to write the attribute without a value.
// cssFilter is nil if CSS filtering is disabled.
// [SafeAttrValue] is the default.
type SafeAttrValueFunc func(tag, name, value string, cssFilter *css.Filter) string

// EscapeFunc escapes text that is not part of a whitelisted tag.
// [EscapeHTML] is the default.
type EscapeFunc func(s string) string

// Options is the set of parameters for [NewFilter].
// The zero value uses the default whitelist and policies.
type Options struct {
	// Whitelist is the set of allowed tags and attributes.
	// If nil, AllowList is used.
	// If both are nil, then [DefaultWhitelist] is used.
	// A non-nil empty whitelist allows nothing.
	Whitelist Whitelist
	// AllowList is an alias for Whitelist.
	AllowList Whitelist

	// OnTag is called for every tag before the whitelist is consulted.
	OnTag TagHook
	// OnIgnoredTag is called for tags not in the whitelist.
	// If it defers, the tag's text is escaped.
	OnIgnoredTag TagHook
	// OnAttribute is called for every attribute of a whitelisted tag.
	OnAttribute AttrHook
	// OnIgnoredAttribute is called for attributes not in the whitelist.
	// If it defers, the attribute is removed.
	OnIgnoredAttribute AttrHook

	// SafeAttrValue filters whitelisted attribute values.
	// If nil, [SafeAttrValue] is used.
	SafeAttrValue SafeAttrValueFunc
	// EscapeHTML escapes text and ignored tags.
	// If nil, [EscapeHTML] is used.
	EscapeHTML EscapeFunc

	// If StripIgnoredTag is true, tags not in the whitelist are removed
	// instead of escaped. OnIgnoredTag is not called.
	StripIgnoredTag bool
	// StripIgnoredTagBody lists ignored tags whose content is removed
	// along with the tags, like "script".
	// The entry [AllTags] matches every ignored tag.
	StripIgnoredTagBody []string
	// If AllowCommentTag is false, HTML comments are removed before filtering.
	AllowCommentTag bool
	// If StripBlankChar is true, invisible control characters
	// are removed before filtering. See [StripBlankChar].
	StripBlankChar bool
	// If SingleQuotedAttributeValue is true,
	// attribute values are written in single quotes instead of double quotes.
	SingleQuotedAttributeValue bool

	// CSS configures the filter for style attributes.
	// If nil, the CSS defaults are used.
	CSS *css.Options
	// If DisableCSS is true, style attribute values are not passed to a CSS filter.
	DisableCSS bool

	// Logger receives configuration warnings.
	// If nil, [slog.Default] is used.
	Logger *slog.Logger
}

// Filter is a compiled set of [Options].
// It is safe to call Process from multiple goroutines.
type Filter struct {
	whitelist map[string]attrSet

	onTag              TagHook
	onIgnoredTag       TagHook
	onAttribute        AttrHook
	onIgnoredAttribute AttrHook
	safeAttrValue      SafeAttrValueFunc
	escape             EscapeFunc

	stripIgnoredTag bool
	stripBody       tagSet
	hasStripBody    bool
	allowComments   bool
	stripBlankChar  bool
	quote           string
	css             *css.Filter
}

// NewFilter returns a new filter for the given options.
// A nil opts is treated the same as the zero value.
func NewFilter(opts *Options) *Filter {
	if opts == nil {
		opts = new(Options)
	}
	wl := opts.Whitelist
	if wl == nil {
		wl = opts.AllowList
	}
	if wl == nil {
		wl = DefaultWhitelist()
	}

	f := &Filter{
		whitelist:          wl.compile(),
		onTag:              opts.OnTag,
		onIgnoredTag:       opts.OnIgnoredTag,
		onAttribute:        opts.OnAttribute,
		onIgnoredAttribute: opts.OnIgnoredAttribute,
		safeAttrValue:      opts.SafeAttrValue,
		escape:             opts.EscapeHTML,
		stripIgnoredTag:    opts.StripIgnoredTag,
		allowComments:      opts.AllowCommentTag,
		stripBlankChar:     opts.StripBlankChar,
		quote:              `"`,
	}
	if f.safeAttrValue == nil {
		f.safeAttrValue = SafeAttrValue
	}
	if f.escape == nil {
		f.escape = EscapeHTML
	}
	if opts.SingleQuotedAttributeValue {
		f.quote = "'"
	}
	if opts.StripIgnoredTagBody != nil {
		f.stripBody = newTagSet(opts.StripIgnoredTagBody)
		f.hasStripBody = true
	}
	if !opts.DisableCSS {
		f.css = css.New(opts.CSS)
	}
	if opts.StripIgnoredTag && opts.OnIgnoredTag != nil {
		logger := opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("StripIgnoredTag and OnIgnoredTag both set; ignored tags will be removed and OnIgnoredTag will not be called")
	}
	return f
}

// Sanitize filters s using a new filter created with the given options.
// Callers that filter many documents with the same options
// should create a [Filter] once with [NewFilter] instead.
func Sanitize(s string, opts *Options) string {
	return NewFilter(opts).Process(s)
}

// Process returns s with every tag, attribute, and value
// not permitted by the filter's options escaped or removed.
func (f *Filter) Process(s string) string {
	if f.stripBlankChar {
		s = StripBlankChar(s)
	}
	if !f.allowComments {
		s = StripCommentTag(s)
	}
	if s == "" {
		return ""
	}

	var body *bodyStripper
	if f.hasStripBody {
		body = &bodyStripper{tags: f.stripBody}
	}
	out := ParseTag(s, func(tag Tag) (string, bool) {
		return f.filterTag(tag, body), true
	}, f.escape)
	if body != nil {
		out = body.remove(out)
	}
	return out
}

func (f *Filter) filterTag(tag Tag, body *bodyStripper) string {
	attrs, isWhite := f.whitelist[tag.Name]
	info := TagInfo{
		SourcePosition: tag.SourcePosition,
		Position:       tag.Position,
		IsClosing:      tag.Closing,
		IsWhite:        isWhite,
	}
	if f.onTag != nil {
		if ret, ok := f.onTag(tag.Name, tag.HTML, info); ok {
			return ret
		}
	}

	if !isWhite {
		switch {
		case body != nil && body.tags.has(tag.Name):
			return body.mark(info)
		case f.stripIgnoredTag:
			return ""
		}
		if f.onIgnoredTag != nil {
			if ret, ok := f.onIgnoredTag(tag.Name, tag.HTML, info); ok {
				return ret
			}
		}
		return f.escape(tag.HTML)
	}

	if tag.Closing {
		return "</" + tag.Name + ">"
	}
	attrHTML, selfClosing := splitAttrs(tag.HTML)
	attrHTML = ParseAttr(attrHTML, func(name, value string) string {
		return f.filterAttr(tag.Name, attrs, name, value)
	})

	sb := new(strings.Builder)
	sb.WriteString("<")
	sb.WriteString(tag.Name)
	if attrHTML != "" {
		sb.WriteString(" ")
		sb.WriteString(attrHTML)
	}
	if selfClosing {
		sb.WriteString(" /")
	}
	sb.WriteString(">")
	return sb.String()
}

func (f *Filter) filterAttr(tag string, allowed attrSet, name, value string) string {
	isWhite := allowed.has(name)
	if f.onAttribute != nil {
		if ret, ok := f.onAttribute(tag, name, value, isWhite); ok {
			return ret
		}
	}
	if !isWhite {
		if f.onIgnoredAttribute != nil {
			if ret, ok := f.onIgnoredAttribute(tag, name, value, isWhite); ok {
				return ret
			}
		}
		return ""
	}

	value = f.safeAttrValue(tag, name, value, f.css)
	if value == "" {
		return name
	}
	if f.quote == "'" {
		value = replace(aposEscaper, value)
	}
	return name + "=" + f.quote + value + f.quote
}
