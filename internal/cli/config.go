package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/config"
)

var configEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect vpath configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the configuration as YAML",
	Long: `Print the loaded configuration as YAML.

With --effective the configuration is rebuilt from the live registry instead:
missing paths that were dropped at registration are gone, and each prefix
lists its entries in the order they are tried.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		cfg, err := eng.Config(cmd.Context(), configEffective)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, cfg)
		}

		data, err := cfg.Dump()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			PrintInfo(cmd.OutOrStdout(), configFile)
			return nil
		}
		paths, err := defaultPaths()
		if err != nil {
			return err
		}
		PrintInfo(cmd.OutOrStdout(), paths.Config)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to the default location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := defaultPaths()
		if err != nil {
			return err
		}
		if _, err := os.Stat(paths.Config); err == nil {
			return fmt.Errorf("config already exists: %s", paths.Config)
		}
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}

		data, err := config.Defaults().Dump()
		if err != nil {
			return err
		}
		if err := os.WriteFile(paths.Config, data, 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		PrintSuccess(cmd.OutOrStdout(), "Wrote "+paths.Config)
		return nil
	},
}

func init() {
	configDumpCmd.Flags().BoolVar(&configEffective, "effective", false, "Rebuild the configuration from the live registry")
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
