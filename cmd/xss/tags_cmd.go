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

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"zombiezen.com/go/xss"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [FILE|-]",
	Short: "List the tags found in HTML",
	Long: "List the tags the filter finds in HTML, one per line.\n" +
		"Each line has the tag's byte offset, its lowercased name,\n" +
		"whether it is a closing tag, and whether the policy's whitelist allows it,\n" +
		"separated by tabs.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		wl := opts.Whitelist
		if wl == nil {
			wl = xss.DefaultWhitelist()
		}
		return processSources(cmd.OutOrStdout(), cmd.InOrStdin(), args, func(s string) string {
			return formatTags(s, wl)
		})
	},
}

func formatTags(s string, wl xss.Whitelist) string {
	allowed := make(map[string]bool, len(wl))
	for name := range wl {
		allowed[strings.ToLower(name)] = true
	}
	sb := new(strings.Builder)
	xss.ParseTag(s, func(tag xss.Tag) (string, bool) {
		fmt.Fprintf(sb, "%d\t%s\t%t\t%t\n", tag.SourcePosition, tag.Name, tag.Closing, allowed[tag.Name])
		return "", false
	}, xss.EscapeHTML)
	return sb.String()
}
