package importer

import (
	"net/http"
	"strings"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/transport"
)

// httpImporter imports HTTP bindings of one verb.
type httpImporter struct {
	name  string
	verb  string
	mimes []MimeImporter
}

// NewHTTPGet returns the HTTP GET importer. Without MIME importers the
// defaults are used.
func NewHTTPGet(mimes ...MimeImporter) Protocol {
	return newHTTP(description.ProtocolHTTPGet, http.MethodGet, mimes)
}

// NewHTTPPost returns the HTTP POST importer.
func NewHTTPPost(mimes ...MimeImporter) Protocol {
	return newHTTP(description.ProtocolHTTPPost, http.MethodPost, mimes)
}

func newHTTP(name, verb string, mimes []MimeImporter) *httpImporter {
	if len(mimes) == 0 {
		mimes = DefaultMimeImporters()
	}
	return &httpImporter{name: name, verb: verb, mimes: mimes}
}

func (h *httpImporter) Name() string { return h.name }

func (h *httpImporter) SOAPVersion() transport.SOAPVersion { return transport.SOAPNone }

func (h *httpImporter) BaseType(service.Style) string {
	if h.verb == http.MethodGet {
		return "HTTPGetClient"
	}
	return "HTTPPostClient"
}

func (h *httpImporter) IsBindingSupported(b *description.Binding) bool {
	hb, ok := description.Find[*description.HTTPBinding](&b.Extensions)
	return ok && strings.EqualFold(hb.Verb, h.verb)
}

func (h *httpImporter) ImportOperation(op *Operation) (*Stub, error) {
	hop, ok := description.Find[*description.HTTPOperation](&op.Bound.Extensions)
	if !ok {
		op.Warn(UnsupportedOperationsIgnored, "no http:operation")
		return nil, nil
	}

	params, ok, err := h.importParams(op)
	if err != nil || !ok {
		return nil, err
	}
	ret, ok, err := h.importReturn(op)
	if err != nil || !ok {
		return nil, err
	}
	return &Stub{
		Verb:     h.verb,
		Location: hop.Location,
		Params:   params,
		Return:   *ret,
	}, nil
}

func (h *httpImporter) importParams(op *Operation) ([]Param, bool, error) {
	in := op.InputExtensions()
	if _, ok := description.Find[*description.HTTPURLEncoded](in); ok {
		params, err := flatParams(op, EncodingQuery)
		return params, err == nil && params != nil, err
	}
	if _, ok := description.Find[*description.HTTPURLReplacement](in); ok {
		params, err := flatParams(op, EncodingPath)
		return params, err == nil && params != nil, err
	}
	for _, m := range h.mimes {
		params, ok, err := m.ImportParameters(op)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return params, params != nil, nil
		}
	}
	if op.Input == nil || len(op.Input.Parts) == 0 {
		return []Param{}, true, nil
	}
	op.Warn(UnsupportedOperationsIgnored, "no MIME importer understands the input")
	return nil, false, nil
}

func (h *httpImporter) importReturn(op *Operation) (*Return, bool, error) {
	for _, m := range h.mimes {
		ret, ok, err := m.ImportReturn(op)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return ret, ret != nil, nil
		}
	}
	if !hasKnownExtensions(op.OutputExtensions()) && (op.Output == nil || len(op.Output.Parts) == 0) {
		return &Return{Type: service.Void(), Decoder: DecoderNone}, true, nil
	}
	op.Warn(UnsupportedOperationsIgnored, "no MIME importer understands the output")
	return nil, false, nil
}

// hasKnownExtensions reports whether ext holds anything besides extensions no
// plugin understands.
func hasKnownExtensions(ext *description.Extensions) bool {
	for _, e := range ext.All() {
		if _, ok := e.(*description.Unknown); !ok {
			return true
		}
	}
	return false
}
