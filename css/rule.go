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
	"regexp"
	"strings"
)

// Whitelist maps lowercase property names to the rule their values must pass.
// Properties that are absent are not allowed.
type Whitelist map[string]Rule

// lower returns a copy of wl with lowercased keys.
func (wl Whitelist) lower() Whitelist {
	m := make(Whitelist, len(wl))
	for name, rule := range wl {
		m[strings.ToLower(name)] = rule
	}
	return m
}

// ruleKind is the type of a [Rule].
type ruleKind int

const (
	ruleNever ruleKind = iota
	ruleAlways
	rulePredicate
	rulePattern
)

// Rule decides whether a property's value is allowed.
// The zero value allows nothing.
type Rule struct {
	kind ruleKind
	pred func(value string) bool
	re   *regexp.Regexp
}

// Always returns a rule that allows every value.
func Always() Rule {
	return Rule{kind: ruleAlways}
}

// Predicate returns a rule that allows values for which f returns true.
// A nil f allows nothing.
func Predicate(f func(value string) bool) Rule {
	if f == nil {
		return Rule{}
	}
	return Rule{kind: rulePredicate, pred: f}
}

// Pattern returns a rule that allows values matched by re.
// A nil re allows nothing.
func Pattern(re *regexp.Regexp) Rule {
	if re == nil {
		return Rule{}
	}
	return Rule{kind: rulePattern, re: re}
}

// Allows reports whether the rule accepts value.
func (r Rule) Allows(value string) bool {
	switch r.kind {
	case ruleAlways:
		return true
	case rulePredicate:
		return r.pred(value)
	case rulePattern:
		return r.re.MatchString(value)
	default:
		return false
	}
}

// String returns "never", "always", "predicate", or the pattern's source.
func (r Rule) String() string {
	switch r.kind {
	case ruleAlways:
		return "always"
	case rulePredicate:
		return "predicate"
	case rulePattern:
		return r.re.String()
	default:
		return "never"
	}
}

// DefaultWhitelist returns a new copy of the whitelist
// used when [Options] does not provide one.
// It allows box model, color, background, border, font, list, and text properties
// with any value. Positioning and animation are not allowed.
func DefaultWhitelist() Whitelist {
	wl := make(Whitelist, len(defaultProperties))
	for _, name := range defaultProperties {
		wl[name] = Always()
	}
	return wl
}

var defaultProperties = []string{
	"background",
	"background-attachment",
	"background-clip",
	"background-color",
	"background-image",
	"background-origin",
	"background-position",
	"background-repeat",
	"background-size",
	"border",
	"border-bottom",
	"border-bottom-color",
	"border-bottom-left-radius",
	"border-bottom-right-radius",
	"border-bottom-style",
	"border-bottom-width",
	"border-collapse",
	"border-color",
	"border-image",
	"border-image-outset",
	"border-image-repeat",
	"border-image-slice",
	"border-image-source",
	"border-image-width",
	"border-left",
	"border-left-color",
	"border-left-style",
	"border-left-width",
	"border-radius",
	"border-right",
	"border-right-color",
	"border-right-style",
	"border-right-width",
	"border-spacing",
	"border-style",
	"border-top",
	"border-top-color",
	"border-top-left-radius",
	"border-top-right-radius",
	"border-top-style",
	"border-top-width",
	"border-width",
	"box-sizing",
	"break-after",
	"break-before",
	"break-inside",
	"caption-side",
	"clear",
	"color",
	"column-count",
	"column-fill",
	"column-gap",
	"column-rule",
	"column-rule-color",
	"column-rule-style",
	"column-rule-width",
	"column-span",
	"column-width",
	"columns",
	"direction",
	"display",
	"empty-cells",
	"float",
	"font",
	"font-family",
	"font-feature-setting",
	"font-kerning",
	"font-language-override",
	"font-size",
	"font-size-adjust",
	"font-stretch",
	"font-style",
	"font-synthesis",
	"font-variant",
	"font-variant-alternates",
	"font-variant-caps",
	"font-variant-east-asian",
	"font-variant-ligatures",
	"font-variant-numeric",
	"font-variant-position",
	"font-weight",
	"hanging-punctuation",
	"height",
	"hyphens",
	"letter-spacing",
	"line-break",
	"line-height",
	"list-style",
	"list-style-image",
	"list-style-position",
	"list-style-type",
	"margin",
	"margin-bottom",
	"margin-left",
	"margin-right",
	"margin-top",
	"max-height",
	"max-width",
	"min-height",
	"min-width",
	"object-fit",
	"object-position",
	"opacity",
	"outline",
	"outline-color",
	"outline-offset",
	"outline-style",
	"outline-width",
	"overflow",
	"overflow-wrap",
	"overflow-x",
	"overflow-y",
	"padding",
	"padding-bottom",
	"padding-left",
	"padding-right",
	"padding-top",
	"page-break-after",
	"page-break-before",
	"page-break-inside",
	"quotes",
	"tab-size",
	"table-layout",
	"text-align",
	"text-align-last",
	"text-combine-upright",
	"text-decoration",
	"text-decoration-color",
	"text-decoration-line",
	"text-decoration-skip",
	"text-decoration-style",
	"text-emphasis",
	"text-emphasis-color",
	"text-emphasis-position",
	"text-emphasis-style",
	"text-height",
	"text-indent",
	"text-justify",
	"text-orientation",
	"text-overflow",
	"text-shadow",
	"text-space-collapse",
	"text-transform",
	"text-underline-position",
	"text-wrap",
	"unicode-bidi",
	"visibility",
	"white-space",
	"width",
	"word-break",
	"word-spacing",
	"word-wrap",
	"writing-mode",
}
