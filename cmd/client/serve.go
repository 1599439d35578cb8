package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/client"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine and the local host surface",
	Long:  "Install the interception layer, start background sync and serve the local host surface until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(_ context.Context, a *client.App) error {
			return a.Run()
		})
	},
}
