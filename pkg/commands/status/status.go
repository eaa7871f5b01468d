// Package status gathers a read-only snapshot of the environment:
// tooling, version pins, scaffold completeness and manifest contents.
package status

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/odoo-devkit/odev/pkg/compose"
	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/engine"
	"github.com/odoo-devkit/odev/pkg/envfile"
	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
	"github.com/odoo-devkit/odev/pkg/versions"
)

// Options defines the options for the Status command
type Options struct {
	// WorkDir is the project directory; defaults to the process cwd
	WorkDir string
	// Config overrides the loaded configuration, used by tests
	Config *config.Config
}

// Result is the gathered snapshot. Nothing in here mutates the
// environment; every probe failure is reported as state, not error.
type Result struct {
	// Engine reports the tooling probes
	Engine engine.Status
	// EnvFile is the env file path
	EnvFile string
	// Triple is the pinned version triple, nil when the env file is
	// missing or malformed
	Triple *versions.Triple
	// MissingDirs lists scaffold directories the triple calls for
	// that do not exist
	MissingDirs []string
	// Manifest is the manifest path, empty when none was found
	Manifest string
	// Services and Volumes come from parsing the manifest
	Services []string
	Volumes  []string
}

// Run collects the snapshot.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.status")
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

	result := &Result{
		Engine:  engine.Detect(ctx),
		EnvFile: filepath.Join(opts.WorkDir, cfg.Compose.EnvFile),
	}

	if triple, err := envfile.Read(result.EnvFile); err == nil {
		result.Triple = &triple
		result.MissingDirs = missingDirs(cfg, opts.WorkDir, triple)
	} else {
		logger.Debug().Err(err).Msg("No usable env file")
	}

	if manifest, found := compose.Probe(opts.WorkDir, cfg.ManifestCandidates()); found {
		result.Manifest = manifest
		info, err := compose.Inspect(manifest)
		if err != nil {
			logger.Warn().Err(err).Str("manifest", manifest).Msg("Could not parse manifest")
		} else {
			result.Services = info.Services
			result.Volumes = info.Volumes
		}
	}
	return result, nil
}

func missingDirs(cfg *config.Config, workDir string, triple versions.Triple) []string {
	root := cfg.Scaffold.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}
	var missing []string
	for _, version := range triple.Values() {
		for _, sub := range cfg.Scaffold.Subdirs {
			dir := filepath.Join(root, strconv.Itoa(version), sub)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				missing = append(missing, dir)
			}
		}
	}
	return missing
}
