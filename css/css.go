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

// Package css filters lists of CSS declarations,
// like the contents of an HTML style attribute,
// against a whitelist of properties.
package css

import (
	"regexp"
	"strings"
)

// DeclInfo describes the declaration passed to a [DeclHook].
type DeclInfo struct {
	// SourcePosition is the byte offset of the declaration in the filter's input.
	SourcePosition int
	// Position is the byte offset in the output where the declaration's replacement will be written.
	Position int
	// Source is the trimmed text of the whole declaration.
	Source string
	// IsWhite is true if the property and value passed the whitelist.
	IsWhite bool
}

// DeclHook is called with a property name and its filtered value.
// Returning false defers to the filter.
// Returning an empty string with true removes the declaration.
type DeclHook func(name, value string, info DeclInfo) (string, bool)

// Options is the set of parameters for [New].
// The zero value uses the default whitelist and policies.
type Options struct {
	// Whitelist is the set of allowed properties.
	// If nil, [DefaultWhitelist] is used.
	Whitelist Whitelist

	// OnDeclaration is called for whitelisted declarations.
	// If it defers, the declaration is written as "name:value".
	OnDeclaration DeclHook
	// OnIgnoredDeclaration is called for declarations not in the whitelist.
	// If it defers, the declaration is removed.
	OnIgnoredDeclaration DeclHook

	// SafeAttrValue filters every property value.
	// An empty result removes the declaration.
	// If nil, [SafeAttrValue] is used.
	SafeAttrValue func(name, value string) string
}

// Filter is a compiled set of [Options].
// It is safe to call Process from multiple goroutines.
type Filter struct {
	whitelist            Whitelist
	onDeclaration        DeclHook
	onIgnoredDeclaration DeclHook
	safeAttrValue        func(name, value string) string
}

// New returns a new filter for the given options.
// A nil opts is treated the same as the zero value.
func New(opts *Options) *Filter {
	if opts == nil {
		opts = new(Options)
	}
	f := &Filter{
		whitelist:            opts.Whitelist,
		onDeclaration:        opts.OnDeclaration,
		onIgnoredDeclaration: opts.OnIgnoredDeclaration,
		safeAttrValue:        opts.SafeAttrValue,
	}
	if f.whitelist == nil {
		f.whitelist = DefaultWhitelist()
	} else {
		f.whitelist = f.whitelist.lower()
	}
	if f.safeAttrValue == nil {
		f.safeAttrValue = SafeAttrValue
	}
	return f
}

// Sanitize filters s using a new filter created with the given options.
func Sanitize(s string, opts *Options) string {
	return New(opts).Process(s)
}

// Process returns the declarations in s that pass the filter,
// each followed by a semicolon.
func (f *Filter) Process(s string) string {
	if s == "" {
		return ""
	}
	return ParseStyle(s, f.filterDecl)
}

func (f *Filter) filterDecl(d Declaration) string {
	isWhite := f.whitelist[strings.ToLower(d.Name)].Allows(d.Value)
	value := f.safeAttrValue(d.Name, d.Value)
	if value == "" {
		return ""
	}
	info := DeclInfo{
		SourcePosition: d.SourcePosition,
		Position:       d.Position,
		Source:         d.Source,
		IsWhite:        isWhite,
	}
	if !isWhite {
		if f.onIgnoredDeclaration != nil {
			if ret, ok := f.onIgnoredDeclaration(d.Name, value, info); ok {
				return ret
			}
		}
		return ""
	}
	if f.onDeclaration != nil {
		if ret, ok := f.onDeclaration(d.Name, value, info); ok {
			return ret
		}
	}
	return d.Name + ":" + value
}

var scriptURLPattern = regexp.MustCompile(`(?i)javascript\s*:`)

// SafeAttrValue is the default value policy.
// It drops values that contain a javascript: URL.
func SafeAttrValue(name, value string) string {
	if scriptURLPattern.MatchString(value) {
		return ""
	}
	return value
}
