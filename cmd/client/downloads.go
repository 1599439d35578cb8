package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/client"
	"github.com/MKhiriev/edu-offline/models"
)

func init() {
	downloadCmd.AddCommand(downloadCourseCmd, downloadMaterialCmd)
	removeCmd.AddCommand(removeCourseCmd, removeMaterialCmd)
	rootCmd.AddCommand(downloadCmd, removeCmd, clearCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Make a course or material available offline",
}

var downloadCourseCmd = &cobra.Command{
	Use:   "course <courseId>",
	Short: "Download a course with all its topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			res, err := a.Services().Downloads.DownloadCourse(ctx, args[0])
			if err != nil {
				return err
			}
			printEntry(cmd, res.Entry)
			fmt.Fprintf(cmd.OutOrStdout(), "  Topics:  %d\n", res.TopicCount)
			if len(res.SkippedTopics) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Skipped: %s\n", strings.Join(res.SkippedTopics, ", "))
			}
			return nil
		})
	},
}

var downloadMaterialCmd = &cobra.Command{
	Use:   "material <materialId>",
	Short: "Download a standalone material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			entry, err := a.Services().Downloads.DownloadMaterial(ctx, args[0])
			if err != nil {
				return err
			}
			printEntry(cmd, entry)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a downloaded course or material",
}

var removeCourseCmd = &cobra.Command{
	Use:   "course <courseId>",
	Short: "Remove a downloaded course and its topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			return a.Services().Downloads.RemoveCourse(ctx, args[0])
		})
	},
}

var removeMaterialCmd = &cobra.Command{
	Use:   "material <materialId>",
	Short: "Remove a downloaded material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			return a.Services().Downloads.RemoveMaterial(ctx, args[0])
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every downloaded entity and queued change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *client.App) error {
			return a.Services().Downloads.ClearAll(ctx)
		})
	},
}

func printEntry(cmd *cobra.Command, e models.DownloadEntry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloaded %s %s\n", e.Type, e.EntityID)
	fmt.Fprintf(out, "  Title:   %s\n", e.Title)
	fmt.Fprintf(out, "  Size:    %d bytes\n", e.SizeBytes)
}
