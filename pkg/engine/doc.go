// Package engine wires configuration to the reflection and import plugins.
//
// A Registry maps plugin names (soap, soap12, httpget, httppost for protocols;
// form, xml, text, opaque for MIME handling) to factories. New resolves the
// names a config.Config lists, in the order it lists them, and the resulting
// Engine drives reflector.Reflector and importer.Importer. Every run is
// logged under its own run_id.
package engine
