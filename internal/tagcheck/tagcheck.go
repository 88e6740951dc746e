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

// Package tagcheck re-reads filtered HTML with an HTML5 tokenizer
// to report the markup a browser would actually see.
package tagcheck

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Token is a piece of markup found by [Tokens].
type Token struct {
	// Type is one of html.StartTagToken, html.EndTagToken,
	// html.SelfClosingTagToken, html.CommentToken, or html.DoctypeToken.
	Type html.TokenType
	// Name is the lowercased tag name.
	// It is empty for comments and doctypes.
	Name string
	// Attrs is sorted by key.
	Attrs []html.Attribute
}

// Tokens returns the markup in s (everything but text)
// when s is tokenized as the content of a <div>.
func Tokens(s string) []Token {
	tok := html.NewTokenizerFragment(strings.NewReader(s), "div")
	var tokens []Token
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return tokens
		case html.TextToken:
			continue
		case html.CommentToken, html.DoctypeToken:
			tokens = append(tokens, Token{Type: tt})
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			t := tok.Token()
			sort.Slice(t.Attr, func(i, j int) bool {
				return t.Attr[i].Key < t.Attr[j].Key
			})
			tokens = append(tokens, Token{
				Type:  tt,
				Name:  t.Data,
				Attrs: t.Attr,
			})
		}
	}
}

// Check reports every element, attribute, or comment in s
// that allowed does not permit.
// Link and source URLs must also be relative or use a non-script scheme.
// Check returns nil if s is clean.
func Check(s string, allowed map[string][]string) []string {
	var problems []string
	for _, t := range Tokens(s) {
		if t.Name == "" {
			problems = append(problems, fmt.Sprintf("found %v", t.Type))
			continue
		}
		attrs, ok := allowed[t.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("found <%s>", t.Name))
			continue
		}
		for _, a := range t.Attrs {
			if !contains(attrs, a.Key) {
				problems = append(problems, fmt.Sprintf("found %s attribute on <%s>", a.Key, t.Name))
				continue
			}
			if (a.Key == "href" || a.Key == "src") && a.Val != "" && !isSafeURL(a.Val) {
				problems = append(problems, fmt.Sprintf("found %s=%q on <%s>", a.Key, a.Val, t.Name))
			}
		}
	}
	return problems
}

func contains(list []string, s string) bool {
	for _, elem := range list {
		if elem == s {
			return true
		}
	}
	return false
}

var safeURLPrefixes = []string{
	"http://",
	"https://",
	"mailto:",
	"tel:",
	"data:image/",
	"ftp://",
	"#",
	"/",
	"./",
	"../",
}

func isSafeURL(u string) bool {
	for _, prefix := range safeURLPrefixes {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}
