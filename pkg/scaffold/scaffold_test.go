package scaffold

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odoo-devkit/odev/pkg/testutil"
	"github.com/odoo-devkit/odev/pkg/versions"
)

var defaultSubdirs = []string{"custom", "design", "enterprise"}

func TestRunCreatesTree(t *testing.T) {
	root := t.TempDir()

	result, err := Run(Options{
		Root:    root,
		Subdirs: defaultSubdirs,
		Triple:  versions.Triple{Oldest: 16, Middle: 17, Latest: 18},
	})
	require.NoError(t, err)

	// 3 version dirs + 3x3 subdirs
	assert.Len(t, result.Created, 12)
	assert.Empty(t, result.Existing)

	for _, version := range []string{"16", "17", "18"} {
		for _, sub := range defaultSubdirs {
			assert.True(t, testutil.DirExists(t, filepath.Join(root, version, sub)),
				"missing %s/%s", version, sub)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	root := t.TempDir()
	opts := Options{
		Root:    root,
		Subdirs: defaultSubdirs,
		Triple:  versions.Triple{Oldest: 16, Middle: 17, Latest: 18},
	}

	_, err := Run(opts)
	require.NoError(t, err)

	// Second run: everything already in place, nothing created, no error
	result, err := Run(opts)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Existing, 12)
}

func TestRunFillsPartialTree(t *testing.T) {
	root := t.TempDir()
	testutil.CreateDir(t, root, "18/custom")

	result, err := Run(Options{
		Root:    root,
		Subdirs: defaultSubdirs,
		Triple:  versions.Triple{Oldest: 16, Middle: 17, Latest: 18},
	})
	require.NoError(t, err)

	assert.Len(t, result.Existing, 2) // 18 and 18/custom
	assert.Len(t, result.Created, 10)
	assert.True(t, testutil.DirExists(t, filepath.Join(root, "18", "design")))
	assert.True(t, testutil.DirExists(t, filepath.Join(root, "16", "enterprise")))
}

func TestRunRejectsInvalidTriple(t *testing.T) {
	_, err := Run(Options{
		Root:    t.TempDir(),
		Subdirs: defaultSubdirs,
		Triple:  versions.Triple{Oldest: 1, Middle: 5, Latest: 18},
	})
	assert.Error(t, err)
}

func TestRunRejectsEmptySubdirs(t *testing.T) {
	_, err := Run(Options{
		Root:   t.TempDir(),
		Triple: versions.Triple{Oldest: 16, Middle: 17, Latest: 18},
	})
	assert.Error(t, err)
}
