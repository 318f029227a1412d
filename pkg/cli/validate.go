package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/wsdlxml"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <file|glob>...",
	Short: "Check WSDL documents without importing them",
	Long: `Decode each WSDL document and compile its embedded schemas.

This command checks:
  - XML syntax and WSDL 1.1 structure
  - Duplicate names and undeclared namespace prefixes
  - Schema references that do not resolve

Schema errors fail validation; schema warnings only do with --strict.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat schema warnings as errors")
}

// validateReport summarizes one document.
type validateReport struct {
	File       string   `json:"file"`
	Valid      bool     `json:"valid"`
	Error      string   `json:"error,omitempty"`
	Services   int      `json:"services"`
	PortTypes  int      `json:"portTypes"`
	Bindings   int      `json:"bindings"`
	Operations int      `json:"operations"`
	Messages   int      `json:"messages"`
	Schema     []string `json:"schema,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logging.Logger(cmd.ErrOrStderr())

	files, err := expandInputs(args)
	if err != nil {
		return err
	}

	reports := make([]validateReport, 0, len(files))
	failed := 0
	for _, file := range files {
		r := validateReport{File: file}
		defs, err := wsdlxml.DecodeFile(file)
		if err != nil {
			r.Error = err.Error()
			reports = append(reports, r)
			failed++
			continue
		}
		r.Services = len(defs.Services())
		r.PortTypes = len(defs.PortTypes())
		r.Bindings = len(defs.Bindings())
		r.Messages = len(defs.Messages())
		for _, pt := range defs.PortTypes() {
			r.Operations += len(pt.Operations)
		}

		ws := schema.NewCompiler(logger).Compile(defs.Types)
		r.Schema = ws.Strings()
		r.Valid = !ws.HasErrors() && (!validateStrict || len(ws) == 0)
		if !r.Valid {
			failed++
		}
		reports = append(reports, r)
	}

	out := cmd.OutOrStdout()
	if err := printResult(out, reports, func() {
		for _, r := range reports {
			if r.Error != "" {
				fmt.Fprintf(out, "INVALID %s\n  %s\n", r.File, r.Error)
				continue
			}
			status := "OK"
			if !r.Valid {
				status = "INVALID"
			}
			fmt.Fprintf(out, "%s %s\n", status, r.File)
			fmt.Fprintf(out, "  Services: %d  Port Types: %d  Bindings: %d  Operations: %d  Messages: %d\n",
				r.Services, r.PortTypes, r.Bindings, r.Operations, r.Messages)
			for _, w := range r.Schema {
				fmt.Fprintf(out, "  %s\n", w)
			}
		}
	}); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(files))
	}
	return nil
}
