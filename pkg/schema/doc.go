// Package schema models the XML Schema fragments embedded in a WSDL document
// and compiles them into one consistent, cross-referenced set.
//
// A Set maps target namespaces to their schema fragments. Reflectors add
// elements and types to it while building bindings; importers read it back to
// recover parameter and return shapes.
//
// # Compilation
//
// Compile runs in a fixed order so its output is deterministic:
//
//  1. every fragment gets an import of the SOAP encoding namespace, the WSDL
//     namespace and any other namespace its definitions reference, never
//     duplicated;
//  2. previous warnings are cleared and the whole set is validated so that
//     references across fragments resolve;
//  3. each problem is rendered with the construct it concerns, the named type
//     that owns it and the namespace, plus a line/column when known.
//
// Validation never fails with an error value. Problems are returned as
// Warnings whose severity is embedded in the text; callers decide whether an
// Error-severity entry aborts their work.
package schema
