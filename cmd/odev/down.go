package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odoo-devkit/odev/pkg/commands/down"
)

func newDownCmd() *cobra.Command {
	var keepVolumes bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: MsgDownShort,
		Long:  MsgDownLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := down.Run(down.Options{KeepVolumes: keepVolumes})
			if err != nil {
				return err
			}
			if result.TornDown {
				fmt.Print(MsgServicesStopped)
			} else {
				fmt.Print(MsgNoManifest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepVolumes, "keep-volumes", false, MsgFlagKeepVolumes)

	return cmd
}
