// Package up implements the bootstrap pipeline: it makes sure the
// container engine is usable, derives the supported Odoo versions,
// scaffolds the per-version addon trees and (re)starts the services.
package up

import (
	"context"
	"os"
	"path/filepath"

	"github.com/odoo-devkit/odev/pkg/compose"
	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/engine"
	"github.com/odoo-devkit/odev/pkg/envfile"
	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
	"github.com/odoo-devkit/odev/pkg/privilege"
	"github.com/odoo-devkit/odev/pkg/scaffold"
	"github.com/odoo-devkit/odev/pkg/versions"
)

// Options defines the options for the Up command
type Options struct {
	// Fresh removes the service volumes before starting, giving a
	// clean database state
	Fresh bool
	// PostInstall marks a re-entered run that already went through
	// the elevated installation stage
	PostInstall bool
	// WorkDir is the project directory; defaults to the process cwd
	WorkDir string
	// Config overrides the loaded configuration, used by tests
	Config *config.Config
}

// Result reports what the pipeline did
type Result struct {
	// Stage is the privilege stage the run executed as
	Stage privilege.Stage
	// Triple is the derived version triple, nil when derivation and
	// the env-file fallback both failed
	Triple *versions.Triple
	// EnvFile is the env file path written this run, empty when the
	// write was skipped
	EnvFile string
	// Scaffolded reports the directory scaffolding outcome
	Scaffolded *scaffold.Result
	// ServicesManaged is true when the services were cycled
	ServicesManaged bool
	// Delegated is true when the pipeline tail ran in a re-entered
	// child process instead of this one
	Delegated bool
}

// Run executes the bootstrap pipeline for the current privilege stage.
//
// A plain user run with the tooling present goes straight to
// provisioning. A user run with tooling missing re-executes itself
// under sudo; that root child installs the engine and exits, and the
// parent then re-enters through the engine group so the fresh group
// membership applies without logging out.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.up")
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

	stage := privilege.Current(opts.PostInstall)
	result := &Result{Stage: stage}
	logger.Debug().Stringer("stage", stage).Str("workDir", opts.WorkDir).Msg("Starting bootstrap pipeline")

	switch stage {
	case privilege.StageRoot:
		return result, installStage(ctx, cfg)
	case privilege.StagePostInstall:
		return result, provisionAndManage(ctx, cfg, opts, result)
	}

	status := engine.Detect(ctx)
	if status.EngineInstalled && status.ComposeInstalled {
		return result, provisionAndManage(ctx, cfg, opts, result)
	}

	engineWasMissing := !status.EngineInstalled
	logger.Info().
		Bool("engine", status.EngineInstalled).
		Bool("compose", status.ComposeInstalled).
		Msg("Container tooling missing, escalating to install it")

	childArgs := []string{"up"}
	if opts.Fresh {
		childArgs = append(childArgs, "--fresh")
	}
	if err := privilege.Elevate(ctx, childArgs); err != nil {
		return result, err
	}
	if !engine.Installed() {
		return result, errors.New(errors.ErrEngineMissing, "engine binary still missing after installation")
	}

	if engineWasMissing {
		// The root child added us to the engine group, but this
		// process predates the membership. Re-enter through sg so the
		// pipeline tail sees the group without a logout.
		result.Delegated = true
		reArgs := append([]string{"up", "--post-install"}, childArgs[1:]...)
		return result, privilege.ReenterWithGroup(ctx, engine.Group, reArgs)
	}
	return result, provisionAndManage(ctx, cfg, opts, result)
}

// installStage is the elevated child: install the tooling, enable the
// daemon and grant the invoking user socket access, then return so the
// waiting parent can continue.
func installStage(ctx context.Context, cfg *config.Config) error {
	logger := logging.GetLogger("commands.up")

	if err := engine.InstallEngine(ctx, cfg.Upstream.InstallScript, cfg.HTTP.Timeout); err != nil {
		return err
	}
	if err := engine.InstallComposePlugin(ctx); err != nil {
		return err
	}
	engine.EnableDaemon(ctx)

	user, ok := privilege.InvokingUser()
	if !ok {
		logger.Warn().Msg("No invoking user recorded, skipping group membership")
		return nil
	}
	if err := engine.AddUserToGroup(ctx, user); err != nil {
		return err
	}
	logger.Info().Str("user", user).Msg("Installation stage complete")
	return nil
}

// provisionAndManage is the pipeline tail: version derivation, env
// file, scaffolding and service management.
func provisionAndManage(ctx context.Context, cfg *config.Config, opts Options, result *Result) error {
	logger := logging.GetLogger("commands.up")

	if !engine.DaemonReachable(ctx) {
		return errors.New(errors.ErrDaemonUnreachable,
			"cannot talk to the container daemon; start the service or log out and back in, then retry")
	}

	envPath := filepath.Join(opts.WorkDir, cfg.Compose.EnvFile)
	triple, derived := resolveTriple(ctx, cfg, envPath)
	if derived {
		if err := envfile.Write(envPath, triple); err != nil {
			return err
		}
		result.EnvFile = envPath
		logger.Info().Stringer("versions", triple).Str("path", envPath).Msg("Wrote version env file")
	}

	if triple.Valid() {
		result.Triple = &triple
		sres, err := scaffold.Run(scaffoldOptions(cfg, opts.WorkDir, triple))
		if err != nil {
			return err
		}
		result.Scaffolded = sres
	} else {
		logger.Warn().Msg("No version information available, skipping addon scaffolding")
	}

	manifest, found := compose.Probe(opts.WorkDir, cfg.ManifestCandidates())
	if !found {
		logger.Debug().Msg("No orchestration manifest in working directory, nothing to start")
		return nil
	}
	if err := compose.Down(ctx, manifest, opts.Fresh); err != nil {
		return err
	}
	if err := compose.Up(ctx, manifest, envPath); err != nil {
		return err
	}
	result.ServicesManaged = true
	return nil
}

// resolveTriple derives the versions from upstream, falling back to a
// previously written env file when the network is unavailable. The
// second return is true only for a fresh derivation that should be
// persisted.
func resolveTriple(ctx context.Context, cfg *config.Config, envPath string) (versions.Triple, bool) {
	logger := logging.GetLogger("commands.up")

	triple, err := versions.Derive(ctx, cfg.Upstream.RepoAPI, cfg.HTTP.Timeout)
	if err == nil {
		return triple, true
	}
	logger.Warn().Err(err).Msg("Could not derive versions from upstream")

	prev, rerr := envfile.Read(envPath)
	if rerr != nil {
		logger.Debug().Err(rerr).Msg("No usable env file to fall back on")
		return versions.Triple{}, false
	}
	logger.Info().Stringer("versions", prev).Msg("Reusing versions from previous run")
	return prev, false
}

func scaffoldOptions(cfg *config.Config, workDir string, triple versions.Triple) scaffold.Options {
	root := cfg.Scaffold.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}
	sopts := scaffold.Options{
		Root:    root,
		Subdirs: cfg.Scaffold.Subdirs,
		Triple:  triple,
	}
	if privilege.IsRoot() {
		if uid, gid, ok := privilege.InvokingIDs(); ok {
			sopts.Owner = &scaffold.Ownership{UID: uid, GID: gid}
		}
	}
	return sopts
}
