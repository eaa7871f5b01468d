package status

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/envfile"
	"github.com/odoo-devkit/odev/pkg/testutil"
	"github.com/odoo-devkit/odev/pkg/versions"
)

const manifestBody = `services:
  web:
    image: odoo:latest
  db:
    image: postgres:16
volumes:
  odoo-db-data:
`

func TestRunFullSnapshot(t *testing.T) {
	workDir := t.TempDir()
	stubDir := t.TempDir()
	testutil.StubCommand(t, stubDir, "docker", filepath.Join(stubDir, "docker.log"), 0)
	testutil.CreateFile(t, workDir, "docker-compose.yml", manifestBody)
	triple := versions.Triple{Oldest: 17, Middle: 18, Latest: 19}
	require.NoError(t, envfile.Write(filepath.Join(workDir, ".env"), triple))
	for _, version := range []string{"17", "18", "19"} {
		parent := testutil.CreateDir(t, workDir, version)
		for _, sub := range []string{"custom", "design", "enterprise"} {
			testutil.CreateDir(t, parent, sub)
		}
	}

	result, err := Run(Options{WorkDir: workDir, Config: config.Default()})
	require.NoError(t, err)

	assert.True(t, result.Engine.Ready())
	require.NotNil(t, result.Triple)
	assert.Equal(t, triple, *result.Triple)
	assert.Empty(t, result.MissingDirs)
	assert.Equal(t, []string{"db", "web"}, result.Services)
	assert.Equal(t, []string{"odoo-db-data"}, result.Volumes)
}

func TestRunReportsMissingDirs(t *testing.T) {
	workDir := t.TempDir()
	stubDir := t.TempDir()
	testutil.StubCommand(t, stubDir, "docker", filepath.Join(stubDir, "docker.log"), 0)
	require.NoError(t, envfile.Write(filepath.Join(workDir, ".env"), versions.Triple{Oldest: 17, Middle: 18, Latest: 19}))

	result, err := Run(Options{WorkDir: workDir, Config: config.Default()})
	require.NoError(t, err)
	assert.Len(t, result.MissingDirs, 9)
	assert.Contains(t, result.MissingDirs, filepath.Join(workDir, "17", "custom"))
}

func TestRunToleratesBareDirectory(t *testing.T) {
	workDir := t.TempDir()
	stubDir := t.TempDir()
	testutil.StubCommand(t, stubDir, "docker", filepath.Join(stubDir, "docker.log"), 1)

	result, err := Run(Options{WorkDir: workDir, Config: config.Default()})
	require.NoError(t, err)

	assert.True(t, result.Engine.EngineInstalled)
	assert.False(t, result.Engine.DaemonReachable)
	assert.Nil(t, result.Triple)
	assert.Empty(t, result.Manifest)
	assert.Empty(t, result.Services)
}
