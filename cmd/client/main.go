package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/edu-offline/internal/app"
	"github.com/MKhiriev/edu-offline/internal/client"
	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

const logRole = "edu-offline-client"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var (
	buildInfo models.AppBuildInfo
	flags     *config.Flags
)

var rootCmd = &cobra.Command{
	Use:           "edu-offline",
	Short:         "Offline-first sync engine for the education app",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags = config.RegisterFlags(rootCmd.PersistentFlags())
}

func main() {
	buildInfo = models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", app.Message(err), err)
		os.Exit(1)
	}
}

// withApp loads the configuration, wires the engine and runs fn against it.
func withApp(ctx context.Context, fn func(ctx context.Context, a *client.App) error) error {
	cfg, err := config.GetClientConfig(flags)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewClientLogger(logRole, cfg.App.LogFile)
	log.Debug().Any("config", cfg).Msg("received configs")

	a, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init client app error: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Err(err).Msg("close client app")
		}
	}()

	return fn(ctx, a)
}
