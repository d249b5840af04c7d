package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytscript/internal/config"
	"ytscript/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.WriteSample(targetPath, overwrite)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w; pass --overwrite to replace it", err)
			}
			if err != nil {
				return services.Wrap(services.ErrFilesystem, "write sample config", "", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(flagValue(ctx.configFlag))
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "load config", "", err)
			}
			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config path: %s\n", path)
			} else {
				fmt.Fprintln(out, "No config file found; defaults were used")
			}
			fmt.Fprintf(out, "Output directory: %s\n", cfg.Output.Dir)
			fmt.Fprintf(out, "Languages: %s\n", strings.Join(cfg.Transcript.Languages, ", "))
			fmt.Fprintf(out, "Backend: %s\n", cfg.Transcript.Backend)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
