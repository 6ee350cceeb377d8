package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spurintel/spursetup/domain/model"
	"github.com/spurintel/spursetup/internal/logging"
	"github.com/spurintel/spursetup/usecase/setup"
)

// newCmdRun executes the full bootstrap non-interactively.
func newCmdRun() *cobra.Command {
	var token string
	var threshold string
	var contextURL string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full setup bootstrap",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			u, err := buildUseCase(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			in := &setup.RunInput{Input: model.Input{
				Token:      token,
				Threshold:  threshold,
				ContextURL: contextURL,
			}}
			out, err := u.Run(ctx, in)
			if out != nil {
				for _, w := range out.Warnings {
					logging.FromContext(ctx).Warn(ctx, "setup warning", "message", w)
				}
			}
			if err != nil {
				if out == nil {
					return err
				}
				return fmt.Errorf("setup failed at stage %s: %w", out.Stage, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "setup complete (run %s)\n", out.RunID)
			if out.Redirect != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "open %s to continue\n", out.Redirect.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Context-API token (blank keeps an existing token)")
	cmd.Flags().StringVar(&threshold, "threshold", "", "Low balance alert threshold (blank or non-numeric stores 0)")
	cmd.Flags().StringVar(&contextURL, "api-url", "", "Context-API URL (blank stores the default)")
	return cmd
}
