// Package cli implements the wsdlkit command line.
//
// Commands:
//
//	wsdlkit reflect -c class.yaml [-o service.wsdl]
//	wsdlkit import <file|glob>...
//	wsdlkit validate <file|glob>...
//	wsdlkit plugins
//	wsdlkit config show|schema|validate
//	wsdlkit version
//
// Every command reads the optional --config file, then WSDLKIT_* environment
// overrides, then its own flags.
package cli
