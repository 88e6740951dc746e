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

package tagcheck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/net/html"
)

func TestTokens(t *testing.T) {
	got := Tokens(`a<B title="x" HREF="#">b</b><br/><!-- c -->&lt;i&gt;`)
	want := []Token{
		{
			Type: html.StartTagToken,
			Name: "b",
			Attrs: []html.Attribute{
				{Key: "href", Val: "#"},
				{Key: "title", Val: "x"},
			},
		},
		{Type: html.EndTagToken, Name: "b"},
		{Type: html.SelfClosingTagToken, Name: "br"},
		{Type: html.CommentToken},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Tokens(...) (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	allowed := map[string][]string{
		"a":  {"href", "title"},
		"br": {},
	}
	tests := []struct {
		s    string
		want []string
	}{
		{s: `<a href="https://example.com/" title="x">y</a><br />`},
		{s: `&lt;script&gt;alert(1)&lt;/script&gt;`},
		{s: `<a href>x</a>`},
		{
			s:    `<script>alert(1)</script>`,
			want: []string{"found <script>", "found <script>"},
		},
		{
			s:    `<a onclick="alert(1)">`,
			want: []string{"found onclick attribute on <a>"},
		},
		{
			s:    `<a href="&#106;avascript:alert(1)">`,
			want: []string{`found href="javascript:alert(1)" on <a>`},
		},
		{
			s:    `<!-- x -->`,
			want: []string{"found Comment"},
		},
	}
	for _, test := range tests {
		got := Check(test.s, allowed)
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Check(%q, allowed) (-want +got):\n%s", test.s, diff)
		}
	}
}
