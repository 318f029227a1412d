package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsdlkit/pkg/cli/internal/output"
	"github.com/getmockd/wsdlkit/pkg/config"
	"github.com/getmockd/wsdlkit/pkg/engine"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the built-in plugins and the order the configuration selects",
	Args:  cobra.NoArgs,
	RunE:  runPlugins,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

// pluginKind is one row of the plugins listing.
type pluginKind struct {
	Kind      string   `json:"kind"`
	Available []string `json:"available"`
	Enabled   []string `json:"enabled"`
}

func runPlugins(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Resolving through the engine reports unknown names the same way reflect
	// and import do.
	if _, err := newEngine(cmd, cfg); err != nil {
		return err
	}

	reg := engine.DefaultRegistry()
	rows := make([]pluginKind, 0, len(engine.Kinds()))
	for _, kind := range engine.Kinds() {
		rows = append(rows, pluginKind{
			Kind:      string(kind),
			Available: reg.Names(kind),
			Enabled:   enabledPlugins(cfg, kind),
		})
	}

	out := cmd.OutOrStdout()
	return printResult(out, rows, func() {
		tw := output.Table(out)
		fmt.Fprintln(tw, "KIND\tENABLED\tAVAILABLE")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Kind, strings.Join(r.Enabled, ","), strings.Join(r.Available, ","))
		}
		_ = tw.Flush()
	})
}

func enabledPlugins(cfg *config.Config, kind engine.Kind) []string {
	switch kind {
	case engine.KindReflectProtocol:
		return cfg.Reflect.Protocols
	case engine.KindMimeParameter:
		return cfg.Reflect.MimeParameters
	case engine.KindMimeReturn:
		return cfg.Reflect.MimeReturns
	case engine.KindImportProtocol:
		return cfg.Import.Protocols
	case engine.KindMimeImporter:
		return cfg.Import.MimeImporters
	}
	return nil
}
