package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"titlecatalog/internal/config"
)

//nolint:gochecknoglobals // Cobra flag storage
var forceInit bool

//nolint:gochecknoglobals // Cobra commands are typically global
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the catalog configuration file",
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with every default filled in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", cfgFile, err)
		}

		cfg := config.Default()
		cfg.Catalog.Source = sourceArg

		if err := cfg.SaveConfig(cfgFile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgFile)

		return nil
	},
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after flag overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(s.cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)

		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
