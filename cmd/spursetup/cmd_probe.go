package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spurintel/spursetup/internal/logging"
)

// newCmdProbe reports which optional config domains are available and
// whether a token is already stored.
func newCmdProbe() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe config domain availability and token presence",
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
			probe, err := u.Probe(ctx)
			if err != nil {
				return err
			}
			for _, w := range probe.Warnings {
				logging.FromContext(ctx).Warn(ctx, "probe warning", "message", w)
			}

			out := map[string]any{
				"threshold": map[string]string{
					"availability": probe.Threshold.Availability.String(),
					"value":        probe.Threshold.Value,
				},
				"context_url": map[string]string{
					"availability": probe.ContextURL.Availability.String(),
					"value":        probe.ContextURL.Value,
				},
				"secret_exists": probe.SecretExists,
				"configured":    probe.Configured,
				"skip_setup":    probe.SkipSetup,
			}
			data, err := yaml.Marshal(out)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return cmd
}
