// Package addon scaffolds a new Odoo addon skeleton inside a scaffolded
// version tree: manifest, python package stubs, an XML view, and the
// access rights CSV.
package addon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Options defines the options for the CreateAddon command
type Options struct {
	// Name is the technical name of the new addon
	Name string
	// Version is the Odoo major version the addon targets
	Version int
	// Root is the scaffold root holding the version trees
	Root string
}

// Result describes the created skeleton
type Result struct {
	// AddonPath is the addon directory
	AddonPath string
	// FilesCreated lists created files relative to AddonPath
	FilesCreated []string
}

// Create scaffolds an addon under <root>/<version>/custom/<name>
func Create(opts Options) (*Result, error) {
	logger := logging.GetLogger("addon")
	logger.Debug().Str("addon", opts.Name).Int("version", opts.Version).Msg("Creating addon skeleton")

	if opts.Name == "" {
		return nil, errors.New(errors.ErrAddonInvalid, "addon name cannot be empty")
	}
	if strings.ContainsAny(opts.Name, "/\\:*?\"<>| ") {
		return nil, errors.Newf(errors.ErrAddonInvalid, "addon name contains invalid characters: %s", opts.Name)
	}
	if opts.Name != strings.ToLower(opts.Name) {
		return nil, errors.Newf(errors.ErrAddonInvalid, "addon name must be lowercase: %s", opts.Name)
	}
	if opts.Version <= 0 {
		return nil, errors.Newf(errors.ErrAddonInvalid, "invalid Odoo version %d", opts.Version)
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "resolving root %s", opts.Root)
	}

	customDir := filepath.Join(root, strconv.Itoa(opts.Version), "custom")
	if _, err := os.Stat(customDir); err != nil {
		return nil, errors.Newf(errors.ErrNotFound,
			"no custom addons directory for version %d; run `odev up` first", opts.Version)
	}

	addonPath := filepath.Join(customDir, opts.Name)
	if _, err := os.Stat(addonPath); err == nil {
		return nil, errors.Newf(errors.ErrAddonExists, "addon %q already exists", opts.Name)
	}

	viewsXML, err := viewsDocument(opts.Name)
	if err != nil {
		return nil, err
	}

	files := map[string]string{
		"__init__.py":                "from . import models\n",
		"__manifest__.py":            manifestContent(opts.Name, opts.Version),
		"models/__init__.py":         "from . import " + opts.Name + "\n",
		"models/" + opts.Name + ".py": modelContent(opts.Name),
		"views/" + opts.Name + "_views.xml": viewsXML,
		"security/ir.model.access.csv":      accessContent(opts.Name),
	}

	if err := writeSkeleton(addonPath, files); err != nil {
		return nil, err
	}

	result := &Result{AddonPath: addonPath}
	for name := range files {
		result.FilesCreated = append(result.FilesCreated, name)
	}

	logger.Info().Str("path", addonPath).Int("files", len(files)).Msg("Addon skeleton created")
	return result, nil
}

// writeSkeleton creates the addon directories and files as one synthfs pipeline
func writeSkeleton(addonPath string, files map[string]string) error {
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
	sfs := synthfs.New()

	var ops []synthfs.Operation
	mkdir := func(dir string) {
		id := fmt.Sprintf("mkdir_%s_%d", filepath.Base(dir), time.Now().UnixNano())
		ops = append(ops, sfs.CreateDirWithID(id, dir, 0755))
	}

	mkdir(addonPath)
	for _, sub := range []string{"models", "views", "security"} {
		mkdir(filepath.Join(addonPath, sub))
	}
	for name, content := range files {
		id := fmt.Sprintf("write_%s_%d", filepath.Base(name), time.Now().UnixNano())
		ops = append(ops, sfs.CreateFileWithID(id, filepath.Join(addonPath, name), []byte(content), 0644))
	}

	options := synthfs.DefaultPipelineOptions()
	if _, err := synthfs.RunWithOptions(context.Background(), pathAwareFS, options, ops...); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "writing addon skeleton %s", addonPath)
	}
	return nil
}

// titleCase turns a technical name into a display name ("sale_report"
// -> "Sale Report")
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func manifestContent(name string, version int) string {
	title := titleCase(name)
	return fmt.Sprintf(`{
    'name': %q,
    'version': '%d.0.1.0.0',
    'category': 'Uncategorized',
    'summary': 'Scaffolded by odev',
    'depends': ['base'],
    'data': [
        'security/ir.model.access.csv',
        'views/%s_views.xml',
    ],
    'installable': True,
    'application': False,
    'license': 'LGPL-3',
}
`, title, version, name)
}

func modelContent(name string) string {
	class := strings.ReplaceAll(titleCase(name), " ", "")
	model := strings.ReplaceAll(name, "_", ".")
	return fmt.Sprintf(`from odoo import fields, models


class %s(models.Model):
    _name = %q
    _description = %q

    name = fields.Char(required=True)
    active = fields.Boolean(default=True)
`, class, model, class)
}

func accessContent(name string) string {
	model := strings.ReplaceAll(name, "_", ".")
	return "id,name,model_id:id,group_id:id,perm_read,perm_write,perm_create,perm_unlink\n" +
		fmt.Sprintf("access_%s_user,%s user,model_%s,base.group_user,1,1,1,1\n",
			name, model, strings.ReplaceAll(model, ".", "_"))
}
