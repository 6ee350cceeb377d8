package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spurintel/spursetup/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spursetup",
		Short:   "Spur add-on setup bootstrap CLI",
		Long:    "spursetup probes, applies, and completes the one-time setup of the Spur enrichment add-on.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultService := os.Getenv("SPURSETUP_SERVICE_URL")
	cmd.PersistentFlags().String("service-url", defaultService,
		"Management endpoint (env SPURSETUP_SERVICE_URL) (https://host:8089 | sqlite:/path/to.db)")
	cmd.PersistentFlags().StringP("config", "f", "",
		"Path to spursetup.yml (flags override file values)")
	defaultFormat := os.Getenv("SPURSETUP_LOG_FORMAT")
	if defaultFormat == "" {
		defaultFormat = "human"
	}
	cmd.PersistentFlags().String("log-format", defaultFormat, "Log format (human|text|json) (env SPURSETUP_LOG_FORMAT)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		level := slog.LevelInfo
		if debug, _ := c.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		l, err := logging.New(format, level)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdProbe())
	cmd.AddCommand(newCmdRun())
	cmd.AddCommand(newCmdServe())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
