package reflector

import (
	"net/http"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// httpProtocol reflects methods as plain HTTP operations addressed by
// "/" + OperationName. The return value goes through the MIME return
// reflectors; how parameters travel depends on the verb.
type httpProtocol struct {
	name    string
	verb    string
	params  []MimeParameterReflector
	returns []MimeReturnReflector
}

func (h *httpProtocol) Name() string { return h.name }

func (h *httpProtocol) BeginClass(r *Reflection) error {
	r.Binding.Extensions.Add(&description.HTTPBinding{Verb: h.verb})
	r.Port.Extensions.Add(&description.HTTPAddress{URL: r.Context.CombineURI(r.Class.Location)})
	return nil
}

func (h *httpProtocol) EndClass(*Reflection) error { return nil }

// addOperation adds the http:operation of the current method.
func (h *httpProtocol) addOperation(r *Reflection) {
	r.OperationBinding.Extensions.Add(&description.HTTPOperation{Location: "/" + r.Method.OperationName()})
}

// reflectMimeReturn offers the return value to the return reflectors in
// order. The first to claim it wins.
func (h *httpProtocol) reflectMimeReturn(r *Reflection) bool {
	if r.Method.Return.IsVoid() {
		return true
	}
	for _, rr := range h.returns {
		if rr.ReflectReturn(r) {
			r.Logger().Debug("return claimed", "method", r.Method.Name, "reflector", rr.Name())
			return true
		}
	}
	return false
}

// reflectMimeParameters offers the parameters to every parameter reflector.
// Each one that claims them adds its marker; at least one must.
func (h *httpProtocol) reflectMimeParameters(r *Reflection) bool {
	handled := false
	for _, pr := range h.params {
		if pr.ReflectParameters(r) {
			handled = true
		}
	}
	return handled
}

// reflectURLParameters sends flat parameters in the query string.
func reflectURLParameters(r *Reflection) bool {
	if !r.Method.HasFlatParams() {
		return false
	}
	addParameterParts(r)
	r.OperationBinding.Input.Extensions.Add(&description.HTTPURLEncoded{})
	return true
}

// addParameterParts adds one input part per parameter. Flat values are
// strings or the shared encoded string array; anything else travels in an
// element of its type.
func addParameterParts(r *Reflection) {
	x := r.exporter()
	for _, p := range r.Method.Params {
		part := &description.MessagePart{Name: p.Name}
		switch {
		case p.Type.IsFlat() && p.Type.Elem != nil:
			part.Type = x.arrayOfString()
		case p.Type.IsFlat():
			part.Type = xmlns.XSDName("string")
		default:
			part.Element = x.element(p.Type)
		}
		r.InputMessage.Parts = append(r.InputMessage.Parts, part)
	}
}

// HTTPGet reflects classes as HTTP GET bindings. Only methods with flat
// parameters can be represented.
type HTTPGet struct {
	httpProtocol
}

// NewHTTPGet returns the HTTP GET protocol with the given return reflectors,
// or the defaults when none are given.
func NewHTTPGet(returns ...MimeReturnReflector) *HTTPGet {
	if len(returns) == 0 {
		returns = DefaultReturnReflectors()
	}
	return &HTTPGet{httpProtocol{name: description.ProtocolHTTPGet, verb: http.MethodGet, returns: returns}}
}

// ReflectMethod implements Protocol.
func (g *HTTPGet) ReflectMethod(r *Reflection) (bool, error) {
	if !r.Method.HasFlatParams() || !g.reflectMimeReturn(r) {
		return false, nil
	}
	reflectURLParameters(r)
	g.addOperation(r)
	return true, nil
}

// HTTPPost reflects classes as HTTP POST bindings with MIME encoded bodies.
type HTTPPost struct {
	httpProtocol
}

// NewHTTPPost returns the HTTP POST protocol. Nil reflector lists select the
// defaults.
func NewHTTPPost(params []MimeParameterReflector, returns []MimeReturnReflector) *HTTPPost {
	if params == nil {
		params = DefaultParameterReflectors()
	}
	if returns == nil {
		returns = DefaultReturnReflectors()
	}
	return &HTTPPost{httpProtocol{
		name:    description.ProtocolHTTPPost,
		verb:    http.MethodPost,
		params:  params,
		returns: returns,
	}}
}

// ReflectMethod implements Protocol.
func (p *HTTPPost) ReflectMethod(r *Reflection) (bool, error) {
	if !p.reflectMimeParameters(r) || !p.reflectMimeReturn(r) {
		return false, nil
	}
	addParameterParts(r)
	p.addOperation(r)
	return true, nil
}
