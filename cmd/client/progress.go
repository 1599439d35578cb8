package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/client"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress <courseId>",
	Short: "Show the learner's progress in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			res, err := a.Services().Progress.GetCourseProgress(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := "network"
			switch {
			case res.Stale:
				source = "cached response"
			case res.Offline:
				source = "local copy"
			}
			fmt.Fprintf(out, "Source: %s\n", source)

			for _, rec := range res.Value {
				mark := ""
				if rec.Provisional() {
					mark = " (not synced)"
				}
				fmt.Fprintf(out, "  %-24s %-12s %3.0f%%%s\n", rec.TopicID, rec.Status, rec.MasteryLevel*100, mark)
			}
			return nil
		})
	},
}
