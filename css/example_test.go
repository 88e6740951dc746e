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

package css_test

import (
	"fmt"
	"regexp"
	"strings"

	"zombiezen.com/go/xss/css"
)

func Example() {
	fmt.Println(css.Sanitize("color: red; position: fixed; background: url(javascript:alert(1))", nil))
	// Output:
	// color:red;
}

func ExamplePattern() {
	f := css.New(&css.Options{
		Whitelist: css.Whitelist{
			"width": css.Pattern(regexp.MustCompile(`^\d+px$`)),
		},
	})
	fmt.Println(f.Process("width: 10px; width: 100%"))
	// Output:
	// width:10px;
}

func ExamplePredicate() {
	f := css.New(&css.Options{
		Whitelist: css.Whitelist{
			"text-align": css.Predicate(func(value string) bool {
				return value == "left" || value == "right"
			}),
		},
	})
	fmt.Println(f.Process("text-align: left; text-align: justify"))
	// Output:
	// text-align:left;
}

func ExampleParseStyle() {
	out := css.ParseStyle("Color: red; /* note */ width: 1px", func(d css.Declaration) string {
		return strings.ToLower(d.Name) + "=" + d.Value
	})
	fmt.Println(out)
	// Output:
	// color=red; width=1px;
}
