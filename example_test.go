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

package xss_test

import (
	"fmt"
	"strings"

	"zombiezen.com/go/xss"
)

func Example() {
	fmt.Println(xss.Sanitize(`<a href="javascript:alert(1)" onclick="evil()">Hello</a>, <script>World</script>!`, nil))
	// Output:
	// <a href>Hello</a>, &lt;script&gt;World&lt;/script&gt;!
}

func ExampleFilter() {
	// Compile the options once and reuse the filter.
	f := xss.NewFilter(&xss.Options{
		Whitelist: xss.Whitelist{
			"b": {},
			"a": {"href"},
		},
		StripIgnoredTag:     true,
		StripIgnoredTagBody: []string{"script"},
	})
	fmt.Println(f.Process(`<script>alert(1)</script><b>bold</b> <i>italic</i>`))
	fmt.Println(f.Process(`<a href="https://example.com/" title="x">link</a>`))
	// Output:
	// <b>bold</b> italic
	// <a href="https://example.com/">link</a>
}

func ExampleOptions_onIgnoredAttribute() {
	// Keep data-* attributes on every whitelisted tag.
	f := xss.NewFilter(&xss.Options{
		OnIgnoredAttribute: func(tag, name, value string, isWhite bool) (string, bool) {
			if !strings.HasPrefix(name, "data-") {
				return "", false
			}
			return name + `="` + xss.EscapeAttrValue(value) + `"`, true
		},
	})
	fmt.Println(f.Process(`<div data-id="42" onmouseover="x()">hi</div>`))
	// Output:
	// <div data-id="42">hi</div>
}

func ExampleParseTag() {
	// Replace every tag with its name in brackets.
	out := xss.ParseTag("hello<A href=\"#\">world</A>", func(tag xss.Tag) (string, bool) {
		if tag.Closing {
			return "[/" + tag.Name + "]", true
		}
		return "[" + tag.Name + "]", true
	}, xss.EscapeHTML)
	fmt.Println(out)
	// Output:
	// hello[a]world[/a]
}

func ExampleParseAttr() {
	out := xss.ParseAttr(`HREF="#" target=_blank checked`, func(name, value string) string {
		return fmt.Sprintf("%s=%q", name, value)
	})
	fmt.Println(out)
	// Output:
	// href="#" target="_blank" checked=""
}
