// Package reflector builds WSDL descriptions from service classes.
//
// A Reflector drives one Protocol per pass over a class. The pass creates the
// port type, binding and service port for the protocol, then offers each
// method to the protocol in turn. A protocol that cannot represent a method
// declines it and everything created for that method is rolled back. A pass
// that ends with no operations leaves nothing behind.
//
// Four protocols are provided:
//
//	SOAP11    document/literal SOAP 1.1 (binding suffix "Soap")
//	SOAP12    document/literal SOAP 1.2 (binding suffix "Soap12")
//	HTTPGet   query string parameters (binding suffix "HttpGet")
//	HTTPPost  MIME encoded parameters (binding suffix "HttpPost")
//
// The HTTP protocols delegate body shapes to MIME reflectors, tried in the
// order they are configured.
package reflector
