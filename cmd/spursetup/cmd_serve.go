package main

import (
	"github.com/spf13/cobra"

	"github.com/spurintel/spursetup/internal/logging"
	"github.com/spurintel/spursetup/internal/webui"
)

// newCmdServe starts the web setup surface.
func newCmdServe() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the setup web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.UI.Listen = listen
			}
			u, err := buildUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			srv := webui.NewServer(u)
			logging.FromContext(ctx).Info(ctx, "serving setup UI", "listen", cfg.UI.Listen, "service", cfg.Service.URL)
			return srv.ListenAndServe(cfg.UI.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config or 127.0.0.1:8642)")
	return cmd
}
