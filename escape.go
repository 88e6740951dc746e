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
	"go4.org/bytereplacer"
)

var (
	angleEscaper = bytereplacer.New(
		"<", "&lt;",
		">", "&gt;",
	)
	quoteEscaper   = bytereplacer.New(`"`, "&quot;")
	quoteUnescaper = bytereplacer.New("&quot;", `"`)
	aposEscaper    = bytereplacer.New("'", "&#39;")
	refEscaper     = bytereplacer.New("&#", "&amp;#")
)

// EscapeHTML replaces '<' and '>' with character references.
// It is the default escaper for text and ignored tags.
// Ampersands are left alone so that existing references survive.
func EscapeHTML(s string) string {
	return replace(angleEscaper, s)
}

// EscapeQuote replaces double quotes with "&quot;".
func EscapeQuote(s string) string {
	return replace(quoteEscaper, s)
}

// UnescapeQuote replaces "&quot;" with double quotes.
func UnescapeQuote(s string) string {
	return replace(quoteUnescaper, s)
}

// EscapeAttrValue escapes a value so it can be placed
// between double quotes in a tag.
// An ampersand that would start a numeric character reference
// is escaped too, so that decoding the value again yields the same text.
func EscapeAttrValue(s string) string {
	return EscapeHTML(EscapeQuote(replace(refEscaper, s)))
}

// replace runs r on a private copy of s,
// since a [bytereplacer.Replacer] rewrites its argument in place.
func replace(r *bytereplacer.Replacer, s string) string {
	if s == "" {
		return ""
	}
	return string(r.Replace([]byte(s)))
}
