package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/cli/internal/output"
	"github.com/getmockd/wsdlkit/pkg/importer"
	"github.com/getmockd/wsdlkit/pkg/wsdlxml"
)

var (
	importFormat             string
	importProtocols          []string
	importMimes              []string
	importStyle              string
	importBaseURL            string
	importURLConfigKey       string
	importFailOnSchemaErrors bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|glob>...",
	Short: "Import WSDL documents into client stub descriptions",
	Long: `Import one or more WSDL 1.1 documents. Each binding is imported by the first
configured protocol that supports it; skipped bindings and operations are
reported as warnings on the result.

Patterns may use ** to match any number of directories.`,
	Example: `  # Import a single document as YAML
  wsdlkit import service.wsdl

  # Import every WSDL below wsdl/ as JSON, generating server skeletons
  wsdlkit import 'wsdl/**/*.wsdl' --style server --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "yaml", "Output format: yaml or json")
	importCmd.Flags().StringSliceVarP(&importProtocols, "protocol", "p", nil, "Protocols to try, in order (overrides config)")
	importCmd.Flags().StringSliceVar(&importMimes, "mime", nil, "MIME importers to try, in order (overrides config)")
	importCmd.Flags().StringVar(&importStyle, "style", "", "Stub style: client or server (overrides config)")
	importCmd.Flags().StringVar(&importBaseURL, "base-url", "", "URL for bindings whose port declares no address")
	importCmd.Flags().StringVar(&importURLConfigKey, "url-config-key", "", "Configuration key recorded for runtime URL lookup")
	importCmd.Flags().BoolVar(&importFailOnSchemaErrors, "fail-on-schema-errors", false, "Stop when the schema set has errors")
}

// importReport is the outcome of importing one file.
type importReport struct {
	File     string             `json:"file" yaml:"file"`
	RunID    string             `json:"runId" yaml:"runId"`
	Clients  []*importer.Client `json:"clients" yaml:"clients"`
	Warnings []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Messages []string           `json:"messages,omitempty" yaml:"messages,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	if importFormat != "yaml" && importFormat != "json" {
		return fmt.Errorf("invalid --format %q: must be yaml or json", importFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(importProtocols) > 0 {
		cfg.Import.Protocols = importProtocols
	}
	if len(importMimes) > 0 {
		cfg.Import.MimeImporters = importMimes
	}
	if importStyle != "" {
		cfg.Import.Style = importStyle
	}
	if importBaseURL != "" {
		cfg.Import.BaseURL = importBaseURL
	}
	if importURLConfigKey != "" {
		cfg.Import.URLConfigKey = importURLConfigKey
	}
	if importFailOnSchemaErrors {
		cfg.Import.FailOnSchemaErrors = true
	}
	eng, err := newEngine(cmd, cfg)
	if err != nil {
		return err
	}

	files, err := expandInputs(args)
	if err != nil {
		return err
	}

	reports := make([]importReport, 0, len(files))
	for _, file := range files {
		defs, err := wsdlxml.DecodeFile(file)
		if err != nil {
			return err
		}
		res, err := eng.Import(cmd.Context(), defs)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}
		for _, msg := range res.Messages {
			output.Warn(cmd.ErrOrStderr(), "%s: %s", file, msg)
		}
		clients := res.Clients
		if clients == nil {
			clients = []*importer.Client{}
		}
		reports = append(reports, importReport{
			File:     file,
			RunID:    res.RunID,
			Clients:  clients,
			Warnings: res.Warnings.Names(),
			Messages: res.Messages,
		})
	}
	return printDocument(cmd.OutOrStdout(), importFormat, reports)
}
