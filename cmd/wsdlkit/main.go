// wsdlkit CLI - reflects service classes into WSDL and imports WSDL into stubs
package main

import "github.com/getmockd/wsdlkit/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
