package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/romantic-page/internal/quotes"
	"github.com/iburimskiy/romantic-page/internal/storage"
	"github.com/iburimskiy/romantic-page/internal/theme"
)

func quietEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ROMANTIC_STORE_DIR", dir)
	t.Setenv("ROMANTIC_LOG_LEVEL", "error")
	t.Setenv("ROMANTIC_LOG_FORMAT", "json")
	return dir
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-version"}, &out))
	assert.Equal(t, version+"\n", out.String())
}

func TestRun_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"-nope"}, &out))
	assert.ErrorIs(t, run([]string{"-h"}, &out), flag.ErrHelp)
}

func TestRun_ListDefaults(t *testing.T) {
	quietEnv(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"-list"}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(quotes.DefaultQuotes))
	assert.Equal(t, "1. "+quotes.DefaultQuotes[0], lines[0])
}

func TestRun_AddPersists(t *testing.T) {
	dir := quietEnv(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"-add", "  Kamu duniaku  "}, &out))
	assert.Equal(t, "4. Kamu duniaku\n", out.String())

	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	stored, err := fs.Get(storage.KeyQuotes)
	require.NoError(t, err)
	assert.Contains(t, stored, "Kamu duniaku")

	out.Reset()
	require.NoError(t, run([]string{"-list"}, &out))
	assert.Contains(t, out.String(), "4. Kamu duniaku\n")
}

func TestRun_AddRejectsShortQuote(t *testing.T) {
	dir := quietEnv(t)
	var out bytes.Buffer

	err := run([]string{"-add", "ab"}, &out)
	require.Error(t, err)
	assert.True(t, quotes.IsValidation(err))
	assert.Empty(t, out.String())

	_, statErr := os.Stat(filepath.Join(dir, storage.KeyQuotes))
	assert.True(t, os.IsNotExist(statErr), "nothing saved")
}

func TestRun_EphemeralLeavesDiskAlone(t *testing.T) {
	dir := quietEnv(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"-ephemeral", "-add", "Hanya untuk hari ini"}, &out))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_InvalidConfig(t *testing.T) {
	quietEnv(t)
	t.Setenv("ROMANTIC_HEARTS_COUNT", "0")

	err := run([]string{"-list"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hearts.count")
}

func TestRun_MissingConfigFile(t *testing.T) {
	quietEnv(t)
	err := run([]string{"-config", filepath.Join(t.TempDir(), "absent.yaml"), "-list"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestFormatList(t *testing.T) {
	items := []string{"satu", "dua"}

	assert.Equal(t, "1. satu\n2. dua\n", formatList(items, false, theme.Default()))

	styled := formatList(items, true, theme.Default())
	assert.Contains(t, styled, "satu")
	assert.Contains(t, styled, "2.")
	assert.Len(t, strings.Split(strings.TrimSpace(styled), "\n"), 2)
	assert.Empty(t, formatList(nil, true, theme.Default()))
}
