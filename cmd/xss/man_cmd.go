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

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
	"zombiezen.com/go/xss/internal/config"
)

var manCmd = &cobra.Command{
	Use:                   "man",
	Short:                 "Print the xss manual page",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Hidden:                true,
	Args:                  cobra.NoArgs,
	// The manual does not depend on the policy.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := manPage()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), page)
		return err
	},
}

// policyKeys are the settings that can be overridden from the environment.
var policyKeys = []string{
	config.KeyAllowCommentTag,
	config.KeyStripBlankChar,
	config.KeyStripIgnoredTag,
	config.KeyStripIgnoredTagBody,
	config.KeySingleQuotedAttributeValue,
	config.KeyCSSDisabled,
}

func manPage() (string, error) {
	page, err := mcobra.NewManPage(1, rootCmd)
	if err != nil {
		return "", fmt.Errorf("man page: %w", err)
	}

	env := new(strings.Builder)
	env.WriteString("XSS_CONFIG_HOME\n  Directory searched first for xss.yaml.\n")
	env.WriteString("XDG_CONFIG_HOME\n  xss.yaml is also searched for in its xss subdirectory.\n")
	for _, key := range policyKeys {
		fmt.Fprintf(env, "%s\n  Overrides the %s policy setting.\n", envName(key), key)
	}
	page = page.
		WithSection("Files", "xss.yaml in the user configuration directory holds the policy. "+
			"It maps whitelist to tag names and their allowed attributes, "+
			"and css.whitelist to CSS property names and their rules. "+
			"A rule is true, false, a regular expression, "+
			"or a table with a pattern or an expr boolean expression over name and value.").
		WithSection("Environment", env.String())
	return page.Build(roff.NewDocument()), nil
}

// envName returns the environment variable that overrides key.
func envName(key string) string {
	return "XSS_" + strings.ToUpper(envKeyReplacer.Replace(key))
}
