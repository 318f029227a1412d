// Package config provides the wsdlkit configuration: which protocol and MIME
// plugins run, in what order, how imports are styled, which extra transports
// are accepted and how logging is set up.
//
// Configuration is read from YAML:
//
//	reflect:
//	  protocols: [soap, soap12, httpget, httppost]
//	  mimeReturns: [xml, text, opaque]
//	import:
//	  protocols: [soap, soap12, httppost, httpget]
//	  mimeImporters: [form, xml, text, opaque]
//	  style: client
//	  transportRules:
//	    - name: jms
//	      predicate: 'scheme == "http" && path endsWith "/jms"'
//	logging:
//	  level: info
//	  format: text
//
// Documents are validated against a JSON Schema reflected from Config before
// they are decoded, and selected settings can be overridden from the
// environment with WSDLKIT_LOG_LEVEL, WSDLKIT_LOG_FORMAT, WSDLKIT_BASE_URL and
// WSDLKIT_STYLE.
package config
