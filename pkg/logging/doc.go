// Package logging provides structured logging configuration for wsdlkit.
//
// This package wraps log/slog so reflection, import and the CLI log the same
// way. It supports configurable levels and text or JSON output.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("imported binding", "binding", "CalculatorSoap", "operations", 4)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor. A nil logger is
// replaced with Nop(), so library callers that do not care about logs can
// pass nil. Component returns a child logger tagged with the component name.
package logging
