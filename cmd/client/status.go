package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/client"
)

func init() {
	rootCmd.AddCommand(statusCmd, versionCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show downloads and pending changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			stats, err := a.Services().Downloads.Stats(ctx)
			if err != nil {
				return err
			}
			entries, err := a.Services().Downloads.ListDownloads(ctx)
			if err != nil {
				return err
			}

			last, err := a.Services().Sync.LastSync(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Storage:")
			fmt.Fprintf(out, "  Courses:   %d\n", stats.CourseCount)
			fmt.Fprintf(out, "  Materials: %d\n", stats.MaterialCount)
			fmt.Fprintf(out, "  Size:      %.2f MB\n", stats.TotalSizeMB)
			fmt.Fprintf(out, "  Pending:   %d\n", stats.PendingSyncs)
			if !last.IsZero() {
				fmt.Fprintf(out, "  Last sync: %s\n", last.Format(time.RFC3339))
			}

			if len(entries) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Downloads:")
			for _, e := range entries {
				fmt.Fprintf(out, "  %-24s %-30s %s\n", e.ID, e.Title, e.DownloadedAt.Format(time.RFC3339))
			}
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), buildInfo)
	},
}
