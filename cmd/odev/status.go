package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odoo-devkit/odev/pkg/commands/status"
	"github.com/odoo-devkit/odev/pkg/style"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := status.Run(status.Options{})
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func renderStatus(w io.Writer, r *status.Result) {
	fmt.Fprintln(w, style.Header("Tooling"))
	fmt.Fprintln(w, style.CheckLine(boolStatus(r.Engine.EngineInstalled), "engine installed", ""))
	fmt.Fprintln(w, style.CheckLine(boolStatus(r.Engine.ComposeInstalled), "compose plugin", ""))
	fmt.Fprintln(w, style.CheckLine(boolStatus(r.Engine.DaemonReachable), "daemon reachable", ""))

	fmt.Fprintln(w, style.Header("Versions"))
	if r.Triple != nil {
		fmt.Fprintln(w, style.CheckLine(style.StatusOK, "pinned", r.Triple.String()))
		if len(r.MissingDirs) > 0 {
			fmt.Fprintln(w, style.CheckLine(style.StatusWarn, "scaffold",
				fmt.Sprintf("%d directories missing, run `odev up`", len(r.MissingDirs))))
		} else {
			fmt.Fprintln(w, style.CheckLine(style.StatusOK, "scaffold", "complete"))
		}
	} else {
		fmt.Fprintln(w, style.CheckLine(style.StatusWarn, "pinned", "no env file, run `odev up`"))
	}

	fmt.Fprintln(w, style.Header("Services"))
	if r.Manifest == "" {
		fmt.Fprintln(w, style.CheckLine(style.StatusSkipped, "manifest", "none found"))
		return
	}
	fmt.Fprintln(w, style.CheckLine(style.StatusOK, "manifest", r.Manifest))
	if len(r.Services) > 0 {
		fmt.Fprintln(w, style.CheckLine(style.StatusOK, "services", strings.Join(r.Services, ", ")))
	}
	if len(r.Volumes) > 0 {
		fmt.Fprintln(w, style.CheckLine(style.StatusOK, "volumes", strings.Join(r.Volumes, ", ")))
	}
}

func boolStatus(ok bool) style.Status {
	if ok {
		return style.StatusOK
	}
	return style.StatusError
}
