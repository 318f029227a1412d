// Package importer turns WSDL bindings into stub descriptors for a code
// generator.
//
// An Importer walks every binding of a description and hands it to the first
// registered Protocol that supports it. The protocol produces one Stub per
// operation. Operations that cannot be imported are skipped and flagged;
// logically inconsistent input stops the import with a *ConfigError.
//
// The HTTP protocols delegate body shapes to MIME importers, tried per
// operation in their configured order. The first importer to claim the
// parameters, and separately the first to claim the return value, owns that
// half of the operation.
package importer
