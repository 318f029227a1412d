package cli

import (
	"io"

	"github.com/getmockd/wsdlkit/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to w. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}

// printDocument outputs data as JSON or YAML. --json wins over format.
func printDocument(w io.Writer, format string, data any) error {
	if jsonOutput || format == "json" {
		return output.JSON(w, data)
	}
	return output.YAML(w, data)
}
