package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/cli/internal/output"
	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/wsdlxml"
)

var (
	reflectClass     string
	reflectOutput    string
	reflectProtocols []string
	reflectBaseURI   string
	reflectHost      string
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Generate a WSDL document from a service class",
	Long: `Reflect a service class description (YAML) into a WSDL 1.1 document.

Each configured protocol adds its own binding. Protocols that cannot represent
a method skip it; a protocol that can represent none of them adds nothing.`,
	Example: `  # Write all four bindings to stdout
  wsdlkit reflect -c calculator.yaml

  # SOAP bindings only, addresses resolved against a base URI
  wsdlkit reflect -c calculator.yaml -p soap -p soap12 --base-uri http://localhost:8080/ -o calc.wsdl`,
	Args: cobra.NoArgs,
	RunE: runReflect,
}

func init() {
	rootCmd.AddCommand(reflectCmd)

	reflectCmd.Flags().StringVarP(&reflectClass, "class", "c", "", "Service class file (YAML)")
	reflectCmd.Flags().StringVarP(&reflectOutput, "output", "o", "", "Write the WSDL to this file instead of stdout")
	reflectCmd.Flags().StringSliceVarP(&reflectProtocols, "protocol", "p", nil, "Protocols to reflect, in order (overrides config)")
	reflectCmd.Flags().StringVar(&reflectBaseURI, "base-uri", "", "Base URI for relative service locations (overrides config)")
	reflectCmd.Flags().StringVar(&reflectHost, "host", "", "Rewrite the host of every port address, e.g. api.example.com:8443")
	_ = reflectCmd.MarkFlagRequired("class")
}

// reflectSummary is the --json output of reflect.
type reflectSummary struct {
	RunID          string   `json:"runId"`
	Class          string   `json:"class"`
	Output         string   `json:"output"`
	Bindings       []string `json:"bindings"`
	SchemaWarnings []string `json:"schemaWarnings,omitempty"`
}

func runReflect(cmd *cobra.Command, _ []string) error {
	if jsonOutput && reflectOutput == "" {
		return errors.New("--json requires --output; the WSDL itself is written to stdout otherwise")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(reflectProtocols) > 0 {
		cfg.Reflect.Protocols = reflectProtocols
	}
	if reflectBaseURI != "" {
		cfg.Reflect.BaseURI = reflectBaseURI
	}
	eng, err := newEngine(cmd, cfg)
	if err != nil {
		return err
	}

	class, err := service.LoadClass(reflectClass)
	if err != nil {
		return err
	}
	defs := description.New(class.Name, class.Namespace)
	res, err := eng.Reflect(cmd.Context(), defs, class)
	if err != nil {
		return fmt.Errorf("reflect %s: %w", class.Name, err)
	}
	if reflectHost != "" {
		description.RewriteAddresses(defs, func(loc string) string {
			return replaceHost(loc, reflectHost)
		})
	}

	for _, w := range res.Warnings {
		output.Warn(cmd.ErrOrStderr(), "%s", w)
	}

	if reflectOutput == "" {
		return wsdlxml.Encode(cmd.OutOrStdout(), defs)
	}
	if err := wsdlxml.EncodeFile(reflectOutput, defs); err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), reflectSummary{
		RunID:          res.RunID,
		Class:          class.Name,
		Output:         reflectOutput,
		Bindings:       res.Bindings,
		SchemaWarnings: res.Warnings.Strings(),
	}, func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bindings)\n", reflectOutput, len(res.Bindings))
		for _, b := range res.Bindings {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", b)
		}
	})
}

// replaceHost swaps the host of an absolute location. Relative or malformed
// locations are returned unchanged.
func replaceHost(loc, host string) string {
	u, err := url.Parse(loc)
	if err != nil || !u.IsAbs() {
		return loc
	}
	u.Host = host
	return u.String()
}
