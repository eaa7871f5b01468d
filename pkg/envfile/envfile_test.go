package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/testutil"
	"github.com/odoo-devkit/odev/pkg/versions"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	triple := versions.Triple{Oldest: 16, Middle: 17, Latest: 18}

	require.NoError(t, Write(path, triple))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, triple, got)
}

func TestWriteExactKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, Write(path, versions.Triple{Oldest: 16, Middle: 17, Latest: 18}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ODOO_VERSION_OLDEST=16\nODOO_VERSION_MIDDLE=17\nODOO_VERSION_LATEST=18\n", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, ".env", "ODOO_VERSION_OLDEST=1\nSTALE=yes\n")

	require.NoError(t, Write(path, versions.Triple{Oldest: 15, Middle: 16, Latest: 17}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "STALE")

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Latest)
}

func TestWriteRejectsInvalidTriple(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	err := Write(path, versions.Triple{Oldest: 16, Middle: 17, Latest: 20})
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"missing key", "ODOO_VERSION_OLDEST=16\nODOO_VERSION_MIDDLE=17\n", errors.ErrEnvFileRead},
		{"non-numeric", "ODOO_VERSION_OLDEST=x\nODOO_VERSION_MIDDLE=17\nODOO_VERSION_LATEST=18\n", errors.ErrEnvFileRead},
		{"not consecutive", "ODOO_VERSION_OLDEST=10\nODOO_VERSION_MIDDLE=17\nODOO_VERSION_LATEST=18\n", errors.ErrEnvFileRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, dir, tt.name+".env", tt.content)
			_, err := Read(path)
			assert.True(t, errors.IsCode(err, tt.code))
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.env"))
	assert.True(t, errors.IsCode(err, errors.ErrEnvFileRead))
}

func TestReadIgnoresCommentsAndForeignKeys(t *testing.T) {
	dir := t.TempDir()
	content := "# generated\nODOO_VERSION_OLDEST=16\nODOO_VERSION_MIDDLE=17\nODOO_VERSION_LATEST=18\nPOSTGRES_PORT=5432\n"
	path := testutil.CreateFile(t, dir, ".env", content)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, versions.Triple{Oldest: 16, Middle: 17, Latest: 18}, got)
}
