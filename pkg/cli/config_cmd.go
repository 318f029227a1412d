package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate, or describe the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after defaults and environment overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printDocument(cmd.OutOrStdout(), "yaml", cfg)
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file against the schema, check its plugin names
against the built-in plugins, and compile its transport rules.

Without an argument the --config file is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no configuration file given; pass a file or --config")
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if _, err := newEngine(cmd, cfg); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return printResult(cmd.OutOrStdout(), map[string]any{"file": path, "valid": true}, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration valid: %s\n", path)
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configValidateCmd)
}
