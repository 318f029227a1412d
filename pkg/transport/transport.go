// Package transport decides which binding transports wsdlkit can import and
// derives the client construction metadata for a binding: its base URL, an
// optional configuration key for that URL, and the SOAP version flag.
package transport

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// SOAPOverHTTP is the standard SOAP HTTP transport URI, used by both SOAP 1.1
// and SOAP 1.2 bindings.
const SOAPOverHTTP = "http://schemas.xmlsoap.org/soap/http"

// Selector reports whether a transport URI is supported.
type Selector interface {
	IsSupportedTransport(uri string) bool
}

// HTTP accepts the standard SOAP HTTP transport.
type HTTP struct{}

// IsSupportedTransport implements Selector.
func (HTTP) IsSupportedTransport(uri string) bool {
	return strings.TrimSuffix(uri, "/") == SOAPOverHTTP
}

// Chain accepts a transport when any of its selectors does, asking them in
// order.
type Chain []Selector

// IsSupportedTransport implements Selector.
func (c Chain) IsSupportedTransport(uri string) bool {
	for _, s := range c {
		if s.IsSupportedTransport(uri) {
			return true
		}
	}
	return false
}

// ruleEnv is what a rule predicate can see.
type ruleEnv struct {
	URI    string `expr:"uri"`
	Scheme string `expr:"scheme"`
	Host   string `expr:"host"`
	Path   string `expr:"path"`
}

// Rule accepts transports matching a configured expr-lang predicate, for
// example `scheme == "http" && path endsWith "/jms"`.
type Rule struct {
	Name    string
	source  string
	program *vm.Program
}

// NewRule compiles predicate. The predicate must evaluate to a bool.
func NewRule(name, predicate string) (*Rule, error) {
	program, err := expr.Compile(predicate, expr.Env(ruleEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("transport rule %q: %w", name, err)
	}
	return &Rule{Name: name, source: predicate, program: program}, nil
}

// IsSupportedTransport implements Selector. Evaluation errors reject the URI.
func (r *Rule) IsSupportedTransport(uri string) bool {
	env := ruleEnv{URI: uri}
	if u, err := url.Parse(uri); err == nil {
		env.Scheme = u.Scheme
		env.Host = u.Host
		env.Path = u.Path
	}
	out, err := expr.Run(r.program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func (r *Rule) String() string {
	return r.Name + ": " + r.source
}
