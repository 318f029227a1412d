package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/config"
	"github.com/getmockd/wsdlkit/pkg/engine"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	logLevel   string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsdlkit",
	Short: "wsdlkit turns service classes into WSDL and WSDL into client stubs",
	Long: `wsdlkit reflects a service class description into a WSDL 1.1 document with
SOAP 1.1, SOAP 1.2, HTTP GET and HTTP POST bindings, and imports WSDL documents
into client stub descriptions.

Configuration can be provided via a configuration file (--config or
WSDLKIT_CONFIG), WSDLKIT_* environment variables, or flags.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("WSDLKIT_CONFIG"), "Configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadConfig reads the configuration in precedence order: file, environment,
// then the --log-level flag. Command flags are applied by each command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if logLevel != "" {
		switch strings.ToLower(logLevel) {
		case "debug", "info", "warn", "warning", "error":
			cfg.Logging.Level = strings.ToLower(logLevel)
		default:
			return nil, fmt.Errorf("invalid --log-level %q: must be debug, info, warn or error", logLevel)
		}
	}
	return cfg, nil
}

// newEngine builds an engine from cfg that logs to the command's stderr.
func newEngine(cmd *cobra.Command, cfg *config.Config) (*engine.Engine, error) {
	if result := config.Validate(cfg); !result.IsValid() {
		return nil, fmt.Errorf("%w:\n%s", config.ErrInvalidConfig, result.Error())
	}
	return engine.New(cfg, nil, cfg.Logging.Logger(cmd.ErrOrStderr()))
}
