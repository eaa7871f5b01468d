package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odoo-devkit/odev/pkg/commands/up"
	"github.com/odoo-devkit/odev/pkg/privilege"
)

func newUpCmd() *cobra.Command {
	var (
		fresh       bool
		postInstall bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: MsgUpShort,
		Long:  MsgUpLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := up.Run(up.Options{Fresh: fresh, PostInstall: postInstall})
			if err != nil {
				return err
			}
			if result.Delegated || result.Stage == privilege.StageRoot {
				// The child process prints the summary
				return nil
			}
			if result.Triple != nil {
				if result.EnvFile != "" {
					fmt.Printf(MsgVersionsPinned, result.Triple, result.EnvFile)
				}
				if result.Scaffolded != nil && len(result.Scaffolded.Created) > 0 {
					fmt.Printf(MsgScaffoldCreated, len(result.Scaffolded.Created))
				}
			} else {
				fmt.Print(MsgVersionsUnknown)
			}
			if result.ServicesManaged {
				fmt.Print(MsgServicesStarted)
			} else {
				fmt.Print(MsgNoManifest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fresh, "fresh", "f", false, MsgFlagFresh)
	cmd.Flags().BoolVar(&postInstall, "post-install", false, MsgFlagPostInstall)
	_ = cmd.Flags().MarkHidden("post-install")

	return cmd
}
