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

	"golang.org/x/net/html/atom"
)

// Whitelist maps tag names to the attribute names allowed on them.
// A tag that is present with no attributes may appear, but bare.
// Tags that are absent are ignored.
// Names are compared case-insensitively.
type Whitelist map[string][]string

var (
	alignAttrs = []string{"align", "valign"}
	cellAttrs  = []string{"width", "rowspan", "colspan", "align", "valign"}
	colAttrs   = []string{"align", "valign", "span", "width"}
	mediaAttrs = []string{"autoplay", "controls", "crossorigin", "loop", "muted", "preload", "src"}
	videoAttrs = []string{
		"autoplay", "controls", "crossorigin", "loop", "muted",
		"playsinline", "poster", "preload", "src", "height", "width",
	}
)

// DefaultWhitelist returns a new copy of the whitelist
// used when [Options] does not provide one.
// It allows common formatting and structural elements,
// links, images, audio, and video,
// but no scripting, styling, forms, or embedded documents.
func DefaultWhitelist() Whitelist {
	wl := Whitelist{
		atom.A.String():          {"target", "href", "title"},
		atom.Abbr.String():       {"title"},
		atom.Area.String():       {"shape", "coords", "href", "alt"},
		atom.Audio.String():      mediaAttrs,
		atom.Bdi.String():        {"dir"},
		atom.Bdo.String():        {"dir"},
		atom.Blockquote.String(): {"cite"},
		atom.Col.String():        colAttrs,
		atom.Colgroup.String():   colAttrs,
		atom.Del.String():        {"datetime"},
		atom.Details.String():    {"open"},
		atom.Font.String():       {"color", "size", "face"},
		atom.Img.String():        {"src", "alt", "title", "width", "height", "loading"},
		atom.Ins.String():        {"datetime"},
		atom.Table.String():      {"width", "border", "align", "valign"},
		atom.Tbody.String():      alignAttrs,
		atom.Td.String():         cellAttrs,
		atom.Tfoot.String():      alignAttrs,
		atom.Th.String():         cellAttrs,
		atom.Thead.String():      alignAttrs,
		atom.Tr.String():         {"rowspan", "align", "valign"},
		atom.Video.String():      videoAttrs,
	}
	for _, a := range bareTags {
		wl[a.String()] = []string{}
	}
	for tag, attrs := range wl {
		wl[tag] = append([]string(nil), attrs...)
	}
	return wl
}

// bareTags are allowed by [DefaultWhitelist] without attributes.
var bareTags = []atom.Atom{
	atom.Address,
	atom.Article,
	atom.Aside,
	atom.B,
	atom.Big,
	atom.Br,
	atom.Caption,
	atom.Center,
	atom.Cite,
	atom.Code,
	atom.Dd,
	atom.Div,
	atom.Dl,
	atom.Dt,
	atom.Em,
	atom.Figcaption,
	atom.Figure,
	atom.Footer,
	atom.H1,
	atom.H2,
	atom.H3,
	atom.H4,
	atom.H5,
	atom.H6,
	atom.Header,
	atom.Hr,
	atom.I,
	atom.Kbd,
	atom.Li,
	atom.Mark,
	atom.Nav,
	atom.Ol,
	atom.P,
	atom.Pre,
	atom.S,
	atom.Section,
	atom.Small,
	atom.Span,
	atom.Strike,
	atom.Strong,
	atom.Sub,
	atom.Summary,
	atom.Sup,
	atom.Tt,
	atom.U,
	atom.Ul,
}

// attrSet is the set of attribute names allowed on a single tag.
type attrSet map[string]struct{}

func (set attrSet) has(name string) bool {
	_, ok := set[name]
	return ok
}

// compile lowercases wl into a lookup table.
func (wl Whitelist) compile() map[string]attrSet {
	m := make(map[string]attrSet, len(wl))
	for tag, attrs := range wl {
		tag = strings.ToLower(tag)
		set := m[tag]
		if set == nil {
			set = make(attrSet, len(attrs))
			m[tag] = set
		}
		for _, name := range attrs {
			set[strings.ToLower(name)] = struct{}{}
		}
	}
	return m
}
