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
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"zombiezen.com/go/xss/css"
)

// spacePattern matches any whitespace a browser might skip over,
// including Unicode spaces that RE2's \s does not cover.
const spacePattern = `[\s\v\p{Z}\x{feff}]*`

// obfuscated builds a case-insensitive pattern for word
// that tolerates whitespace between every letter.
func obfuscated(word string) string {
	sb := new(strings.Builder)
	for i := 0; i < len(word); i++ {
		if i > 0 {
			sb.WriteString(spacePattern)
		}
		sb.WriteString(regexp.QuoteMeta(word[i : i+1]))
	}
	return sb.String()
}

var (
	numericRefPattern = regexp.MustCompile(`&#([a-zA-Z0-9]*);?`)
	colonRefPattern   = regexp.MustCompile(`(?i)&colon;?`)
	newlineRefPattern = regexp.MustCompile(`(?i)&newline;?`)

	// scriptProtocolPattern matches javascript:, vbscript:, livescript:, and mocha:.
	scriptProtocolPattern = regexp.MustCompile(`(?i)((` +
		obfuscated("java") + `|` + obfuscated("vb") + `|` + obfuscated("live") + `)` +
		spacePattern + obfuscated("script") + spacePattern +
		`|` + obfuscated("mocha") + `):`)
	expressionPattern = regexp.MustCompile(`(?i)` + obfuscated("expression") + spacePattern + `\(`)
	urlPattern        = regexp.MustCompile(`(?i)` + obfuscated("url") + spacePattern + `\(`)
)

// safeURLPrefixes lists the prefixes a link or source URL may start with.
var safeURLPrefixes = []string{
	"http://",
	"https://",
	"mailto:",
	"tel:",
	"data:image/",
	"ftp://",
	"./",
	"../",
	"#",
	"/",
}

// SafeAttrValue is the default attribute value policy.
// It returns the value to emit for a whitelisted attribute,
// already escaped for a double-quoted context,
// or the empty string if the value should be dropped.
//
// The value is first normalized with [FriendlyAttrValue].
// href and src values must start with one of the safe URL prefixes.
// background values must not name a script protocol.
// style values must not use expression(...) or a script protocol in url(...),
// and are then passed through cssFilter unless it is nil.
func SafeAttrValue(tag, name, value string, cssFilter *css.Filter) string {
	value = FriendlyAttrValue(value)

	switch name {
	case "href", "src":
		value = strings.TrimSpace(value)
		if !hasSafeURLPrefix(value) {
			return ""
		}
	case "background":
		if scriptProtocolPattern.MatchString(value) {
			return ""
		}
	case "style":
		if expressionPattern.MatchString(value) {
			return ""
		}
		if urlPattern.MatchString(value) && scriptProtocolPattern.MatchString(value) {
			return ""
		}
		if cssFilter != nil {
			value = cssFilter.Process(value)
		}
	}
	return EscapeAttrValue(value)
}

func hasSafeURLPrefix(value string) bool {
	for _, prefix := range safeURLPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// FriendlyAttrValue decodes the references commonly used to hide
// a protocol from a naive check and removes control characters:
//
//   - "&quot;" becomes '"'.
//   - Numeric character references become the character they name.
//   - "&colon;" becomes ':' and "&newline;" becomes a space.
//   - Control characters are removed as described in [ClearNonPrintableCharacter].
func FriendlyAttrValue(s string) string {
	s = UnescapeQuote(s)
	s = EscapeHTMLEntities(s)
	s = EscapeDangerHTML5Entities(s)
	s = ClearNonPrintableCharacter(s)
	return s
}

// EscapeHTMLEntities replaces numeric character references
// (like "&#106;" or "&#x6A;") with the characters they refer to.
// The semicolon is optional.
// The whole alphanumeric run after "&#" is consumed,
// but only its leading digits are used.
// A reference without digits becomes U+0000.
func EscapeHTMLEntities(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	return numericRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		code := strings.TrimSuffix(strings.TrimPrefix(ref, "&#"), ";")
		return string(numericRefRune(code))
	})
}

// numericRefRune interprets code as a UTF-16 code unit,
// the way a browser's legacy entity decoder would.
func numericRefRune(code string) rune {
	base := rune(10)
	if code != "" && (code[0] == 'x' || code[0] == 'X') {
		base = 16
		code = code[1:]
	}
	var n rune
	for i := 0; i < len(code); i++ {
		d := digitValue(code[i])
		if d < 0 || d >= base {
			break
		}
		n = (n*base + d) & 0xffff
	}
	return n
}

func digitValue(c byte) rune {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0')
	case 'a' <= c && c <= 'f':
		return rune(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return rune(c-'A') + 10
	default:
		return -1
	}
}

// EscapeDangerHTML5Entities replaces the HTML5 named references
// "&colon;" and "&newline;" (any case, semicolon optional).
func EscapeDangerHTML5Entities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = colonRefPattern.ReplaceAllLiteralString(s, ":")
	s = newlineRefPattern.ReplaceAllLiteralString(s, " ")
	return s
}

// ClearNonPrintableCharacter replaces carriage returns and line feeds with spaces,
// removes all other C0 control characters and DEL,
// and trims surrounding whitespace.
func ClearNonPrintableCharacter(s string) string {
	t := transform.Chain(
		runes.Map(func(r rune) rune {
			if r == '\r' || r == '\n' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.Predicate(isControl)),
	)
	s, _, _ = transform.String(t, s)
	return strings.TrimSpace(s)
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
