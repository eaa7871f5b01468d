package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestNoCommandIsAnError(t *testing.T) {
	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, out, "odev")
}

func TestUnknownCommandIsAnError(t *testing.T) {
	_, err := execute(t, "frobnicate")
	require.Error(t, err)
}

func TestUnknownFlagIsAnError(t *testing.T) {
	_, err := execute(t, "down", "--no-such-flag")
	require.Error(t, err)
}

func TestGenconfigPrintsCommentedDefaults(t *testing.T) {
	out, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "# manifest = ")
	assert.Contains(t, out, "[upstream]")
	assert.Contains(t, out, "[scaffold]")
}

func TestTopicsListsEmbeddedDocs(t *testing.T) {
	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "bootstrap")
	assert.Contains(t, out, "configuration")
	assert.Contains(t, out, "versions")
}

func TestHelpResolvesTopics(t *testing.T) {
	out, err := execute(t, "topics", "versions")
	require.NoError(t, err)
	assert.Contains(t, out, "ODOO_VERSION_LATEST")
}
