package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"docs/versions.md":  {Data: []byte("# Versions\n\nHow the triple is derived.\n")},
		"docs/escalation.txt": {Data: []byte("Plain escalation notes.\n")},
		"docs/ignored.json": {Data: []byte("{}")},
		"docs/sub/nested.md": {Data: []byte("# Nested\n")},
	}
}

func TestNewScansSupportedFiles(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"escalation", "versions"}, tm.ListTopics())

	// Unsupported extensions and subdirectories are skipped
	_, exists := tm.GetTopic("ignored")
	assert.False(t, exists)
	_, exists = tm.GetTopic("nested")
	assert.False(t, exists)
}

func TestGetTopicNormalizesFlags(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{})
	require.NoError(t, err)

	topic, exists := tm.GetTopic("--versions")
	require.True(t, exists)
	assert.Equal(t, "versions", topic.Name)
	assert.Equal(t, ".md", topic.Format)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(testFS(), "nope", Options{})
	assert.Error(t, err)
}

func TestCustomExtensions(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{Extensions: []string{".json"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"ignored"}, tm.ListTopics())
}

func TestInstallTopicsCommand(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "odev"}
	tm.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "versions")
	assert.Contains(t, out.String(), "escalation")
}

func TestInstallRendersTopic(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "odev"}
	tm.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"topics", "escalation"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "Plain escalation notes.\n", out.String())
}

func TestInstallUnknownTopic(t *testing.T) {
	tm, err := New(testFS(), "docs", Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "odev", SilenceUsage: true, SilenceErrors: true}
	tm.Install(root)

	root.SetArgs([]string{"topics", "bogus"})
	assert.Error(t, root.Execute())
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}
