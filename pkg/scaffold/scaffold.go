// Package scaffold creates the per-version addon directory trees the
// orchestration manifest mounts into the Odoo containers.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
	"github.com/odoo-devkit/odev/pkg/versions"
)

// Ownership is applied to created directories so elevated runs hand
// them back to the invoking user
type Ownership struct {
	UID int
	GID int
}

// Options configures a scaffolding run
type Options struct {
	// Root is the directory the version trees are created under
	Root string
	// Subdirs are created inside each version directory
	Subdirs []string
	// Triple supplies the three version directory names
	Triple versions.Triple
	// Owner, when set, is applied to every created directory
	Owner *Ownership
}

// Result reports what a scaffolding run did
type Result struct {
	// Created lists directories that did not exist before
	Created []string
	// Existing lists directories that were already in place
	Existing []string
}

// Run creates the scaffold. Creation is existence-gated, so re-runs on
// an existing tree are no-ops.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")

	if len(opts.Subdirs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no scaffold subdirectories configured")
	}
	if !opts.Triple.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid version triple %s", opts.Triple)
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "resolving scaffold root %s", opts.Root)
	}

	// Parents precede children so the pipeline never creates a
	// directory inside a missing one
	result := &Result{}
	var targets []string
	for _, version := range opts.Triple.Values() {
		versionDir := filepath.Join(root, strconv.Itoa(version))
		dirs := []string{versionDir}
		for _, sub := range opts.Subdirs {
			dirs = append(dirs, filepath.Join(versionDir, sub))
		}
		for _, target := range dirs {
			if info, err := os.Stat(target); err == nil && info.IsDir() {
				result.Existing = append(result.Existing, target)
				continue
			}
			targets = append(targets, target)
		}
	}

	if len(targets) == 0 {
		logger.Debug().Msg("Scaffold already complete")
		return result, nil
	}

	if err := createDirs(targets); err != nil {
		return nil, err
	}
	result.Created = targets

	if opts.Owner != nil {
		if err := applyOwnership(root, opts, targets); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("created", len(result.Created)).
		Int("existing", len(result.Existing)).
		Str("versions", opts.Triple.String()).
		Msg("Addon scaffold ready")
	return result, nil
}

// createDirs runs the directory creations as one synthfs pipeline
func createDirs(targets []string) error {
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(targets))
	for _, target := range targets {
		id := fmt.Sprintf("mkdir_%s_%d", filepath.Base(target), time.Now().UnixNano())
		ops = append(ops, sfs.CreateDirWithID(id, target, 0755))
	}

	options := synthfs.DefaultPipelineOptions()
	if _, err := synthfs.RunWithOptions(context.Background(), pathAwareFS, options, ops...); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "creating scaffold directories")
	}
	return nil
}

// applyOwnership chowns the created directories and their version-level
// parents to the invoking user
func applyOwnership(root string, opts Options, created []string) error {
	owned := map[string]struct{}{}
	for _, version := range opts.Triple.Values() {
		owned[filepath.Join(root, strconv.Itoa(version))] = struct{}{}
	}
	for _, dir := range created {
		owned[dir] = struct{}{}
	}

	for dir := range owned {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := os.Chown(dir, opts.Owner.UID, opts.Owner.GID); err != nil {
			return errors.Wrapf(err, errors.ErrOwnership, "chown %s", dir)
		}
	}
	return nil
}
