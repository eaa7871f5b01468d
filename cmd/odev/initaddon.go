package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odoo-devkit/odev/pkg/addon"
	"github.com/odoo-devkit/odev/pkg/config"
	"github.com/odoo-devkit/odev/pkg/envfile"
	"github.com/odoo-devkit/odev/pkg/errors"
)

func newInitAddonCmd() *cobra.Command {
	var targetVersion int

	cmd := &cobra.Command{
		Use:   "init-addon <name>",
		Short: MsgInitAddonShort,
		Long:  MsgInitAddonLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}
			cfg, err := config.Load(wd)
			if err != nil {
				return err
			}

			version := targetVersion
			if version == 0 {
				triple, err := envfile.Read(filepath.Join(wd, cfg.Compose.EnvFile))
				if err != nil {
					return errors.Wrap(err, errors.ErrAddonInvalid,
						"no --version given and no env file to read the pinned versions from; run `odev up` first")
				}
				version = triple.Latest
			}

			root := cfg.Scaffold.Root
			if !filepath.IsAbs(root) {
				root = filepath.Join(wd, root)
			}
			result, err := addon.Create(addon.Options{Name: args[0], Version: version, Root: root})
			if err != nil {
				return err
			}

			fmt.Printf(MsgAddonCreated, args[0], result.AddonPath)
			for _, file := range result.FilesCreated {
				fmt.Printf(MsgAddonFileItem, file)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&targetVersion, "version", 0, MsgFlagAddonVer)

	return cmd
}
