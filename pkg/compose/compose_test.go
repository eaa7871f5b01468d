package compose

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odoo-devkit/odev/pkg/testutil"
)

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "compose.yml", "services: {}\n")

	// Preferred name missing, fallback found
	path, ok := Probe(dir, []string{"docker-compose.yml", "compose.yml"})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "compose.yml"), path)

	// Preferred name wins once present
	testutil.CreateFile(t, dir, "docker-compose.yml", "services: {}\n")
	path, ok = Probe(dir, []string{"docker-compose.yml", "compose.yml"})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), path)
}

func TestProbeMissing(t *testing.T) {
	_, ok := Probe(t.TempDir(), []string{"docker-compose.yml", "compose.yml"})
	assert.False(t, ok)
}

func TestProbeIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateDir(t, dir, "docker-compose.yml")

	_, ok := Probe(dir, []string{"docker-compose.yml"})
	assert.False(t, ok)
}

func TestDownArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "down", "--remove-orphans"},
		downArgs("docker-compose.yml", false))

	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "down", "--remove-orphans", "--volumes"},
		downArgs("docker-compose.yml", true))
}

func TestUpArgs(t *testing.T) {
	dir := t.TempDir()
	envFile := testutil.CreateFile(t, dir, ".env", "ODOO_VERSION_LATEST=18\n")

	assert.Equal(t,
		[]string{"compose", "-f", "m.yml", "--env-file", envFile, "up", "-d", "--build", "--wait"},
		upArgs("m.yml", envFile))

	// Missing env file is simply omitted
	assert.Equal(t,
		[]string{"compose", "-f", "m.yml", "up", "-d", "--build", "--wait"},
		upArgs("m.yml", filepath.Join(dir, "nope.env")))

	assert.Equal(t,
		[]string{"compose", "-f", "m.yml", "up", "-d", "--build", "--wait"},
		upArgs("m.yml", ""))
}

func TestDownInvokesEngine(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "docker.log")
	testutil.StubCommand(t, dir, "docker", logFile, 0)

	require.NoError(t, Down(context.Background(), "docker-compose.yml", true))

	lines := testutil.ReadLines(t, logFile)
	require.Len(t, lines, 1)
	assert.Equal(t, "compose -f docker-compose.yml down --remove-orphans --volumes", lines[0])
}

func TestDownPropagatesFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.StubCommand(t, dir, "docker", "", 2)

	assert.Error(t, Down(context.Background(), "docker-compose.yml", false))
}

func TestReachable(t *testing.T) {
	dir := t.TempDir()
	testutil.StubCommand(t, dir, "docker", "", 0)
	assert.True(t, Reachable(context.Background()))
}

func TestReachableDaemonDown(t *testing.T) {
	dir := t.TempDir()
	testutil.StubCommand(t, dir, "docker", "", 1)
	assert.False(t, Reachable(context.Background()))
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	manifest := testutil.CreateFile(t, dir, "docker-compose.yml", `
services:
  web:
    image: odoo:18
  db:
    image: postgres:16
volumes:
  odoo-db-data:
  odoo-web-data:
`)

	info, err := Inspect(manifest)
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "web"}, info.Services)
	assert.Equal(t, []string{"odoo-db-data", "odoo-web-data"}, info.Volumes)
}

func TestInspectInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	manifest := testutil.CreateFile(t, dir, "bad.yml", "services: [unclosed\n")

	_, err := Inspect(manifest)
	assert.Error(t, err)
}
