// Package down stops the orchestrated services.
package down

import (
	"context"
	"os"

	"github.com/odoo-devkit/odev/pkg/compose"
	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Options defines the options for the Down command
type Options struct {
	// KeepVolumes retains the named volumes; by default down discards
	// them along with the services, giving the next up a clean database
	KeepVolumes bool
	// WorkDir is the project directory; defaults to the process cwd
	WorkDir string
	// Config overrides the loaded configuration, used by tests
	Config *config.Config
}

// Result reports what was torn down
type Result struct {
	// Manifest is the manifest that was acted on, empty when none
	// was found
	Manifest string
	// TornDown is true when the services were stopped
	TornDown bool
}

// Run stops the services. The daemon is probed first so an unusable
// engine fails loudly instead of leaving services in an unknown state.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.down")
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
		logger.Warn().Str("workDir", opts.WorkDir).Msg("No orchestration manifest found, nothing to stop")
		return &Result{}, nil
	}

	if err := compose.Down(ctx, manifest, !opts.KeepVolumes); err != nil {
		return nil, err
	}
	logger.Info().Str("manifest", manifest).Bool("volumesRemoved", !opts.KeepVolumes).Msg("Services stopped")
	return &Result{Manifest: manifest, TornDown: true}, nil
}
