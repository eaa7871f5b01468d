package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odoo-devkit/odev/pkg/commands/restart"
)

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: MsgRestartShort,
		Long:  MsgRestartLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := restart.Run(restart.Options{})
			if err != nil {
				return err
			}
			if result.Restarted {
				fmt.Print(MsgServicesRestarted)
			} else {
				fmt.Print(MsgNoManifest)
			}
			return nil
		},
	}
}
