// Package wsdlxml reads and writes WSDL 1.1 documents.
//
// Decode turns a document into a description.Definitions graph with its
// embedded XML Schema fragments in a schema.Set. Binding, operation, message
// and port extensions in the SOAP 1.1, SOAP 1.2, HTTP, MIME and text-matching
// namespaces become typed extensions; any other extension element is kept as
// a description.Unknown carrying its wsdl:required flag.
//
// Encode writes a graph back out. Prefixes for the well-known namespaces are
// fixed (wsdl, soap, soap12, http, mime, tm, s, soapenc) and the target
// namespace is bound to tns; other namespaces get generated prefixes.
package wsdlxml
