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

// xss filters untrusted HTML from files or standard input
// against a whitelist policy and writes the result to standard output.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"zombiezen.com/go/xss"
	"zombiezen.com/go/xss/internal/config"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool
	logger     = log.NewWithOptions(os.Stderr, log.Options{Prefix: "xss"})

	rootCmd = &cobra.Command{
		Use:   "xss [FILE|-]...",
		Short: "Filter untrusted HTML against a whitelist",
		Long: "Filter untrusted HTML against a whitelist of tags and attributes.\n\n" +
			"Each FILE is filtered in turn and written to standard output.\n" +
			"With no FILE, or when FILE is -, standard input is read.\n" +
			"The policy is read from xss.yaml in the user configuration directory,\n" +
			"from $XSS_CONFIG_HOME, or from the file named by --config.",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger = setupLog(cmd.ErrOrStderr(), debug)
			return loadConfig()
		},
		RunE: execute,
	}
)

func execute(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	f := xss.NewFilter(opts)
	return processSources(cmd.OutOrStdout(), cmd.InOrStdin(), args, f.Process)
}

// processSources filters each named source with process and writes the results to w.
// "-" or an empty args reads from stdin.
func processSources(w io.Writer, stdin io.Reader, args []string, process func(string) string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		b, err := readSource(stdin, arg)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, process(string(b))); err != nil {
			return err
		}
	}
	return nil
}

func readSource(stdin io.Reader, arg string) ([]byte, error) {
	if arg != "-" {
		return os.ReadFile(arg)
	}
	// Waiting on a terminal is almost always a mistake.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("standard input is a terminal; pass a file or pipe input")
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return b, nil
}

// loadOptions builds filter options from the current configuration.
func loadOptions() (*xss.Options, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return cfg.Options(slog.New(logger))
}

func loadConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		dirs, err := configDirs()
		if err != nil {
			return err
		}
		for _, v := range dirs {
			viper.AddConfigPath(v)
		}
		viper.SetConfigName("xss")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("xss")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("Using configuration file", "path", used)
	}
	return nil
}

var envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

func configDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, "xss")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, fmt.Errorf("find configuration directory: %w", err)
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "xss")}, dirs...)
	}
	if c := os.Getenv("XSS_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}
	return dirs, nil
}

// addPolicyFlags adds flags that override policy settings
// and binds them to their configuration keys.
func addPolicyFlags(flags *pflag.FlagSet) {
	flags.Bool("allow-comments", false, "keep HTML comments")
	flags.Bool("strip-blank-char", false, "remove invisible control characters")
	flags.Bool("strip-ignored-tag", false, "remove tags not in the whitelist instead of escaping them")
	flags.StringSlice("strip-ignored-tag-body", nil, "remove the content of these ignored tags (* for all)")
	flags.Bool("single-quote", false, "quote attribute values with single quotes")
	flags.Bool("no-css", false, "do not filter style attributes")

	// Config bindings
	_ = viper.BindPFlag(config.KeyAllowCommentTag, flags.Lookup("allow-comments"))
	_ = viper.BindPFlag(config.KeyStripBlankChar, flags.Lookup("strip-blank-char"))
	_ = viper.BindPFlag(config.KeyStripIgnoredTag, flags.Lookup("strip-ignored-tag"))
	_ = viper.BindPFlag(config.KeyStripIgnoredTagBody, flags.Lookup("strip-ignored-tag-body"))
	_ = viper.BindPFlag(config.KeySingleQuotedAttributeValue, flags.Lookup("single-quote"))
	_ = viper.BindPFlag(config.KeyCSSDisabled, flags.Lookup("no-css"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "policy file (default xss.yaml in the user configuration directory)")
	flags.BoolVar(&debug, "debug", false, "log debugging information")
	addPolicyFlags(flags)

	rootCmd.AddCommand(cssCmd, tagsCmd, manCmd)
}
