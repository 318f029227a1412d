// Package description holds the WSDL service binding graph: messages, port
// types, bindings and services owned by one Definitions value and indexed by
// name.
//
// Protocol-specific data never lives on the graph types themselves. It is
// attached through the open extension model: every Binding, Port,
// OperationBinding, MessageBinding and MessagePart carries an ordered
// Extensions list, and Find looks an entry up by logical kind. A kind may be
// an interface (SOAPBindingKind matches both SOAP 1.1 and SOAP 1.2 bindings)
// or a concrete pointer type for an exact match. The first match wins.
//
// Reflectors append extensions while building a binding; importers only read
// them.
package description
