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

// Package config decodes filter policies from configuration files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"zombiezen.com/go/xss"
	"zombiezen.com/go/xss/css"
)

// Keys of the policy settings.
const (
	KeyAllowCommentTag            = "allow-comment-tag"
	KeyStripBlankChar             = "strip-blank-char"
	KeyStripIgnoredTag            = "strip-ignored-tag"
	KeyStripIgnoredTagBody        = "strip-ignored-tag-body"
	KeySingleQuotedAttributeValue = "single-quoted-attribute-value"
	KeyCSSDisabled                = "css.disabled"
)

// Config is a filter policy.
type Config struct {
	// Whitelist maps tag names to allowed attributes.
	// If nil, the default whitelist is used.
	Whitelist                  map[string][]string `mapstructure:"whitelist"`
	AllowCommentTag            bool                `mapstructure:"allow-comment-tag"`
	StripBlankChar             bool                `mapstructure:"strip-blank-char"`
	StripIgnoredTag            bool                `mapstructure:"strip-ignored-tag"`
	StripIgnoredTagBody        TagList             `mapstructure:"strip-ignored-tag-body"`
	SingleQuotedAttributeValue bool                `mapstructure:"single-quoted-attribute-value"`
	CSS                        CSSConfig           `mapstructure:"css"`
}

// TagList is a list of tag names.
// In a policy it may also be written as a boolean:
// true means every tag and false means none.
type TagList []string

var tagListType = reflect.TypeOf(TagList(nil))

func decodeTagList(from, to reflect.Type, data any) (any, error) {
	if to != tagListType {
		return data, nil
	}
	var all bool
	switch data := data.(type) {
	case bool:
		all = data
	case string:
		// Environment variables arrive as strings.
		switch data {
		case "true":
			all = true
		case "false":
		default:
			return data, nil
		}
	default:
		return data, nil
	}
	if !all {
		return TagList{}, nil
	}
	return TagList{xss.AllTags}, nil
}

// CSSConfig is the policy for style attributes.
type CSSConfig struct {
	// Disabled turns off filtering of style attribute values.
	Disabled bool `mapstructure:"disabled"`
	// Whitelist maps property names to rules.
	// A rule is a boolean, a regular expression string,
	// or a table with exactly one of "pattern" or "expr".
	// If nil, the default CSS whitelist is used.
	Whitelist map[string]any `mapstructure:"whitelist"`
}

// RuleConfig is the table form of a CSS rule.
type RuleConfig struct {
	// Pattern is a regular expression that allowed values match.
	Pattern string `mapstructure:"pattern"`
	// Expr is a boolean expression over the variables name and value.
	Expr string `mapstructure:"expr"`
}

// Load decodes the policy from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decodeTagList,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	return cfg, nil
}

// Options converts the policy to filter options.
// Configuration warnings are sent to logger.
func (cfg *Config) Options(logger *slog.Logger) (*xss.Options, error) {
	opts := &xss.Options{
		AllowCommentTag:            cfg.AllowCommentTag,
		StripBlankChar:             cfg.StripBlankChar,
		StripIgnoredTag:            cfg.StripIgnoredTag,
		SingleQuotedAttributeValue: cfg.SingleQuotedAttributeValue,
		DisableCSS:                 cfg.CSS.Disabled,
		Logger:                     logger,
	}
	if cfg.Whitelist != nil {
		opts.Whitelist = xss.Whitelist(cfg.Whitelist)
	}
	if len(cfg.StripIgnoredTagBody) > 0 {
		opts.StripIgnoredTagBody = []string(cfg.StripIgnoredTagBody)
	}
	// Disabled only turns off style filtering in HTML;
	// the rules still apply to CSS filtered on its own.
	if cfg.CSS.Whitelist != nil {
		wl, err := cfg.CSS.rules()
		if err != nil {
			return nil, err
		}
		opts.CSS = &css.Options{Whitelist: wl}
	}
	return opts, nil
}

func (cfg *CSSConfig) rules() (css.Whitelist, error) {
	names := make([]string, 0, len(cfg.Whitelist))
	for name := range cfg.Whitelist {
		names = append(names, name)
	}
	sort.Strings(names)

	wl := make(css.Whitelist, len(names))
	for _, name := range names {
		rule, err := ParseRule(name, cfg.Whitelist[name])
		if err != nil {
			return nil, fmt.Errorf("css whitelist: %s: %w", name, err)
		}
		wl[name] = rule
	}
	return wl, nil
}

// ParseRule converts the configured rule for the named property to a [css.Rule].
func ParseRule(name string, raw any) (css.Rule, error) {
	switch raw := raw.(type) {
	case nil:
		return css.Rule{}, nil
	case bool:
		if !raw {
			return css.Rule{}, nil
		}
		return css.Always(), nil
	case string:
		return compilePattern(raw)
	}

	var rc RuleConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &rc,
	})
	if err != nil {
		return css.Rule{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return css.Rule{}, err
	}
	switch {
	case rc.Pattern != "" && rc.Expr != "":
		return css.Rule{}, errors.New("both pattern and expr set")
	case rc.Pattern != "":
		return compilePattern(rc.Pattern)
	case rc.Expr != "":
		return CompileExpr(name, rc.Expr)
	default:
		return css.Rule{}, errors.New("rule must set pattern or expr")
	}
}

func compilePattern(s string) (css.Rule, error) {
	re, err := regexp.Compile(s)
	if err != nil {
		return css.Rule{}, fmt.Errorf("pattern: %w", err)
	}
	return css.Pattern(re), nil
}

// CompileExpr compiles a boolean expression into a rule for the named property.
// The expression can refer to the variables name and value.
// Values for which the expression fails to evaluate are not allowed.
func CompileExpr(name, src string) (css.Rule, error) {
	prog, err := expr.Compile(src, expr.Env(exprEnv("", "")), expr.AsBool())
	if err != nil {
		return css.Rule{}, fmt.Errorf("expr: %w", err)
	}
	return css.Predicate(func(value string) bool {
		return runExpr(prog, name, value)
	}), nil
}

func exprEnv(name, value string) map[string]any {
	return map[string]any{
		"name":  name,
		"value": value,
	}
}

func runExpr(prog *vm.Program, name, value string) bool {
	out, err := expr.Run(prog, exprEnv(name, value))
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
