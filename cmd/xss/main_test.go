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
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/xss"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessSources(t *testing.T) {
	f := xss.NewFilter(nil)
	path := writeFile(t, "a.html", "<script>x</script>")
	stdin := strings.NewReader("<b>y</b>")

	buf := new(bytes.Buffer)
	err := processSources(buf, stdin, []string{path, "-"}, f.Process)
	require.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;<b>y</b>", buf.String())
}

func TestProcessSourcesStdin(t *testing.T) {
	buf := new(bytes.Buffer)
	err := processSources(buf, strings.NewReader("a<i>b</i>"), nil, xss.NewFilter(nil).Process)
	require.NoError(t, err)
	assert.Equal(t, "a<i>b</i>", buf.String())
}

func TestProcessSourcesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")
	err := processSources(io.Discard, strings.NewReader(""), []string{path}, xss.EscapeHTML)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFormatTags(t *testing.T) {
	got := formatTags(`<a href="#"><X>y</X></a>`, xss.DefaultWhitelist())
	want := "0\ta\tfalse\ttrue\n" +
		"12\tx\tfalse\tfalse\n" +
		"16\tx\ttrue\tfalse\n" +
		"20\ta\ttrue\ttrue\n"
	assert.Equal(t, want, got)
}

func TestConfigDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XSS_CONFIG_HOME", dir)
	dirs, err := configDirs()
	require.NoError(t, err)
	require.NotEmpty(t, dirs)
	assert.Equal(t, dir, dirs[0])
}

func TestRootCommand(t *testing.T) {
	t.Setenv("XSS_CONFIG_HOME", t.TempDir())
	cfgPath := writeFile(t, "policy.yaml", "whitelist: {b: []}\nstrip-ignored-tag: true\n")
	inputPath := writeFile(t, "input.html", `<b title="x">bold</b><i>italic</i>`)

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfgPath, inputPath})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "<b>bold</b>italic", out.String())
}

func TestCSSCommandDisabledPolicy(t *testing.T) {
	t.Setenv("XSS_CONFIG_HOME", t.TempDir())
	cfgPath := writeFile(t, "policy.yaml", "css: {disabled: true, whitelist: {width: true}}\n")
	inputPath := writeFile(t, "input.css", "width: 1px; color: red")

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"css", "--config", cfgPath, inputPath})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "width:1px;", out.String())
}

func TestManCommand(t *testing.T) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"man"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), ".TH")
	assert.Contains(t, out.String(), "Filter untrusted HTML")
	assert.Contains(t, out.String(), "XSS_CONFIG_HOME")
	assert.Contains(t, out.String(), "XSS_STRIP_IGNORED_TAG_BODY")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "XSS_CSS_DISABLED", envName("css.disabled"))
	assert.Equal(t, "XSS_ALLOW_COMMENT_TAG", envName("allow-comment-tag"))
}

func TestSetupLog(t *testing.T) {
	buf := new(bytes.Buffer)
	l := setupLog(buf, false)
	l.Debug("hidden")
	l.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	setupLog(buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
