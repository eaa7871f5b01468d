// Package restart cycles the orchestrated services without touching
// volumes, env files or scaffolding.
package restart

import (
	"context"
	"os"
	"path/filepath"

	"github.com/odoo-devkit/odev/pkg/compose"
	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Options defines the options for the Restart command
type Options struct {
	// WorkDir is the project directory; defaults to the process cwd
	WorkDir string
	// Config overrides the loaded configuration, used by tests
	Config *config.Config
}

// Result reports the restart outcome
type Result struct {
	// Manifest is the manifest that was acted on, empty when none
	// was found
	Manifest string
	// Restarted is true when the services were cycled
	Restarted bool
}

// Run stops and restarts the services described by the manifest.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.restart")
	ctx := context.Background()

	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		opts.WorkDir = wd
	}
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.WorkDir)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if !compose.Reachable(ctx) {
		return nil, errors.New(errors.ErrDaemonUnreachable,
			"container tooling is not usable; run `odev up` first")
	}

	manifest, found := compose.Probe(opts.WorkDir, cfg.ManifestCandidates())
	if !found {
		logger.Warn().Str("workDir", opts.WorkDir).Msg("No orchestration manifest found, nothing to restart")
		return &Result{}, nil
	}

	if err := compose.Down(ctx, manifest, false); err != nil {
		return nil, err
	}
	if err := compose.Up(ctx, manifest, filepath.Join(opts.WorkDir, cfg.Compose.EnvFile)); err != nil {
		return nil, err
	}
	logger.Info().Str("manifest", manifest).Msg("Services restarted")
	return &Result{Manifest: manifest, Restarted: true}, nil
}
