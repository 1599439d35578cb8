package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/client"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline changes once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			report, err := a.Services().Sync.Drain(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Drained:   %d\n", report.Drained)
			fmt.Fprintf(out, "Remaining: %d\n", report.Remaining)
			if report.FailedID != 0 {
				fmt.Fprintf(out, "Failed at: #%d\n", report.FailedID)
			}
			return err
		})
	},
}
