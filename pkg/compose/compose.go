// Package compose drives the external compose-style orchestration CLI.
// The manifest itself is consumed as a black box; odev only chooses the
// invocations and the env file that parameterizes them.
package compose

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/odoo-devkit/odev/pkg/engine"
	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/execx"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Probe returns the first manifest candidate present in dir
func Probe(dir string, candidates []string) (string, bool) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Reachable reports whether the compose plugin can actually manage
// services right now (plugin present and daemon answering)
func Reachable(ctx context.Context) bool {
	return engine.ComposeInstalled(ctx) && engine.DaemonReachable(ctx)
}

// Down tears services down, removing named volumes when requested
func Down(ctx context.Context, manifest string, removeVolumes bool) error {
	defer logging.LogDuration(time.Now(), "compose down")

	args := downArgs(manifest, removeVolumes)
	if res := execx.Run(ctx, engine.Binary, args...); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrComposeExec, "compose down exited with code %d", res.Code)
	}
	return nil
}

// Up brings services up in the background, rebuilding images and
// waiting for health before returning. Wait-for-healthy semantics are
// the orchestration tool's, not ours.
func Up(ctx context.Context, manifest, envFile string) error {
	logger := logging.GetLogger("compose")
	defer logging.LogDuration(time.Now(), "compose up")

	args := upArgs(manifest, envFile)
	logger.Info().Str("manifest", manifest).Msg("Bringing services up")
	if res := execx.Run(ctx, engine.Binary, args...); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrComposeExec, "compose up exited with code %d", res.Code)
	}
	return nil
}

func downArgs(manifest string, removeVolumes bool) []string {
	args := []string{"compose", "-f", manifest, "down", "--remove-orphans"}
	if removeVolumes {
		args = append(args, "--volumes")
	}
	return args
}

func upArgs(manifest, envFile string) []string {
	args := []string{"compose", "-f", manifest}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			args = append(args, "--env-file", envFile)
		}
	}
	return append(args, "up", "-d", "--build", "--wait")
}
