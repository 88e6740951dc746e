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
	"github.com/spf13/cobra"
	"zombiezen.com/go/xss/css"
)

var cssCmd = &cobra.Command{
	Use:   "css [FILE|-]...",
	Short: "Filter CSS declaration lists",
	Long: "Filter lists of CSS declarations, like the contents of a style attribute,\n" +
		"against the policy's CSS whitelist.\n" +
		"The whitelist applies even if the policy disables CSS filtering of HTML.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		f := css.New(opts.CSS)
		return processSources(cmd.OutOrStdout(), cmd.InOrStdin(), args, f.Process)
	},
}
