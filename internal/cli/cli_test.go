package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"toolterm/internal/prefs"
	"toolterm/internal/theme"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"TOOLTERM_BACKEND", "TOOLTERM_DATA_DIR", "TOOLTERM_LOG_FILE", "TOOLTERM_CELL_WIDTH"} {
		if prev, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
	}

	configPath, backendFlag, logLevel = "", "", ""
	themeShowFormat = "yaml"
	cfgStore = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	full := append([]string{"--config", filepath.Join(dir, "config.yaml"), "--log-level", "disabled"}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

type prefsFile struct {
	Preferences map[string]string `toml:"preferences"`
}

func TestThemeListMarksCurrent(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "--backend", "memory", "theme", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Contains(t, lines[0], "KEY")
	assert.Contains(t, lines[1], "light")
	assert.True(t, strings.HasPrefix(lines[2], "*"), "dark is the default theme: %q", lines[2])
	assert.Contains(t, lines[2], "Dark (Default)")
}

func TestThemeSetPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "--backend", "toml", "theme", "set", "nord")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to Nord")

	var doc prefsFile
	_, err = toml.DecodeFile(filepath.Join(dir, "preferences.toml"), &doc)
	require.NoError(t, err)
	assert.Equal(t, "nord", doc.Preferences[prefs.ThemeStorageKey])

	out, err = run(t, dir, "--backend", "toml", "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "nord (Nord)")
	assert.Contains(t, out, "base: dark")
}

func TestThemeSetUnknownKey(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "--backend", "toml", "theme", "set", "solarized")
	require.Error(t, err)
	assert.ErrorIs(t, err, theme.ErrUnknownTheme)

	out, err := run(t, dir, "--backend", "toml", "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "dark (Dark (Default))")
}

func TestThemeGetReportsFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.toml"), []byte("[preferences]\nit-tools-theme = \"solarized\"\n"), 0o644))

	out, err := run(t, dir, "--backend", "toml", "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "dark (Dark (Default))")
	assert.Contains(t, out, `stored key "solarized" is unknown`)
}

func TestThemeToggle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "--backend", "toml", "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to Light")

	out, err = run(t, dir, "--backend", "toml", "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to Dark (Default)")
}

func TestThemeShowYAML(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "--backend", "memory", "theme", "show", "ocean")
	require.NoError(t, err)

	var rec theme.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "ocean", rec.Key)
	assert.Equal(t, theme.Dark, rec.Base)
	assert.Equal(t, "20px", rec.Overrides.Common.BorderRadius)
}

func TestThemeShowJSONDefaultsToCurrent(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "--backend", "memory", "theme", "show", "--format", "json")
	require.NoError(t, err)

	var rec theme.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "dark", rec.Key)
}

func TestThemeShowRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "--backend", "memory", "theme", "show", "nope")
	assert.ErrorIs(t, err, theme.ErrUnknownTheme)

	_, err = run(t, dir, "--backend", "memory", "theme", "show", "light", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestMenuToggleAndStatus(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "--backend", "sqlite", "menu", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "collapsed: false")
	assert.Contains(t, out, "small screen: false")

	out, err = run(t, dir, "--backend", "sqlite", "menu", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "collapsed: true")

	out, err = run(t, dir, "--backend", "sqlite", "menu", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "collapsed: true")
	assert.FileExists(t, filepath.Join(dir, "toolterm.db"))
}

func TestInvalidBackendFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "--backend", "redis", "theme", "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage backend")
}
