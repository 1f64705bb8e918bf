package app

import (
	"github.com/spf13/cobra"

	"snpscan/internal/appcore"
	"snpscan/internal/config"
)

// newConfigCmd prints the effective configuration as YAML, a starting
// point for --config files.
func newConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default (or a loaded and validated) configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return appcore.Exit(appcore.ExitUsage, err)
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return appcore.Exit(appcore.ExitRuntime, err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return appcore.Exit(appcore.ExitRuntime, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "YAML config file to validate and echo")
	return cmd
}
