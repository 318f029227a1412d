package transport

import (
	"strings"
)

// SOAPVersion distinguishes SOAP 1.1 from SOAP 1.2 clients. HTTP GET and POST
// clients carry no version.
type SOAPVersion string

// SOAP versions.
const (
	SOAPNone SOAPVersion = ""
	SOAP11   SOAPVersion = "1.1"
	SOAP12   SOAPVersion = "1.2"
)

// ClientInfo is the construction metadata recorded for an imported binding.
type ClientInfo struct {
	BaseURL      string      `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	URLConfigKey string      `json:"urlConfigKey,omitempty" yaml:"urlConfigKey,omitempty"`
	SOAPVersion  SOAPVersion `json:"soapVersion,omitempty" yaml:"soapVersion,omitempty"`
	// LegacyURLSuffix is set when the SOAP 1.1 discovery-suffix convention was
	// applied to BaseURL.
	LegacyURLSuffix bool `json:"legacyUrlSuffix,omitempty" yaml:"legacyUrlSuffix,omitempty"`
}

const wsdlSuffix = "?wsdl"

// NewClientInfo derives client metadata. The binding-declared address wins
// over the caller default. SOAP 1.1 clients strip a trailing ?wsdl discovery
// suffix from the URL; SOAP 1.2 clients keep the URL as declared.
func NewClientInfo(bindingURL, defaultURL string, version SOAPVersion, configKey string) ClientInfo {
	info := ClientInfo{
		BaseURL:      bindingURL,
		URLConfigKey: configKey,
		SOAPVersion:  version,
	}
	if info.BaseURL == "" {
		info.BaseURL = defaultURL
	}
	if version == SOAP11 && hasSuffixFold(info.BaseURL, wsdlSuffix) {
		info.BaseURL = info.BaseURL[:len(info.BaseURL)-len(wsdlSuffix)]
		info.LegacyURLSuffix = true
	}
	return info
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
