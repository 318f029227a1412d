package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/getmockd/wsdlkit/pkg/config"
	"github.com/getmockd/wsdlkit/pkg/importer"
	"github.com/getmockd/wsdlkit/pkg/reflector"
	"github.com/getmockd/wsdlkit/pkg/transport"
)

// Kind is a plugin category.
type Kind string

// Plugin kinds.
const (
	KindReflectProtocol Kind = "reflect-protocol"
	KindMimeParameter   Kind = "mime-parameter"
	KindMimeReturn      Kind = "mime-return"
	KindImportProtocol  Kind = "import-protocol"
	KindMimeImporter    Kind = "mime-importer"
)

// Kinds lists every plugin kind.
func Kinds() []Kind {
	return []Kind{KindReflectProtocol, KindMimeParameter, KindMimeReturn, KindImportProtocol, KindMimeImporter}
}

// ReflectProtocolFactory builds a reflection protocol. HTTP protocols receive
// the resolved MIME reflectors; SOAP protocols ignore them.
type ReflectProtocolFactory func(params []reflector.MimeParameterReflector, returns []reflector.MimeReturnReflector) reflector.Protocol

// ImportProtocolFactory builds an import protocol. SOAP protocols use the
// selector and HTTP protocols the MIME importers.
type ImportProtocolFactory func(selector transport.Selector, mimes []importer.MimeImporter) importer.Protocol

// catalog is a name-keyed set of factories of one kind.
type catalog[F any] struct {
	kind      Kind
	factories map[string]F
}

func newCatalog[F any](kind Kind) *catalog[F] {
	return &catalog[F]{kind: kind, factories: make(map[string]F)}
}

func (c *catalog[F]) names() []string {
	names := make([]string, 0, len(c.factories))
	for n := range c.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Registry maps configured plugin names to factories. It is thread-safe;
// in practice it is filled once at startup and only read afterwards.
type Registry struct {
	mu sync.RWMutex

	reflectProtocols *catalog[ReflectProtocolFactory]
	mimeParameters   *catalog[func() reflector.MimeParameterReflector]
	mimeReturns      *catalog[func() reflector.MimeReturnReflector]
	importProtocols  *catalog[ImportProtocolFactory]
	mimeImporters    *catalog[func() importer.MimeImporter]
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		reflectProtocols: newCatalog[ReflectProtocolFactory](KindReflectProtocol),
		mimeParameters:   newCatalog[func() reflector.MimeParameterReflector](KindMimeParameter),
		mimeReturns:      newCatalog[func() reflector.MimeReturnReflector](KindMimeReturn),
		importProtocols:  newCatalog[ImportProtocolFactory](KindImportProtocol),
		mimeImporters:    newCatalog[func() importer.MimeImporter](KindMimeImporter),
	}
}

// DefaultRegistry returns a registry holding every built-in plugin.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.RegisterReflectProtocol(config.PluginSOAP, func([]reflector.MimeParameterReflector, []reflector.MimeReturnReflector) reflector.Protocol {
		return reflector.NewSOAP11()
	}))
	must(r.RegisterReflectProtocol(config.PluginSOAP12, func([]reflector.MimeParameterReflector, []reflector.MimeReturnReflector) reflector.Protocol {
		return reflector.NewSOAP12()
	}))
	must(r.RegisterReflectProtocol(config.PluginHTTPGet, func(_ []reflector.MimeParameterReflector, returns []reflector.MimeReturnReflector) reflector.Protocol {
		return reflector.NewHTTPGet(returns...)
	}))
	must(r.RegisterReflectProtocol(config.PluginHTTPPost, func(params []reflector.MimeParameterReflector, returns []reflector.MimeReturnReflector) reflector.Protocol {
		return reflector.NewHTTPPost(params, returns)
	}))

	must(r.RegisterMimeParameter(config.PluginForm, func() reflector.MimeParameterReflector { return reflector.FormParameters{} }))
	must(r.RegisterMimeParameter(config.PluginXML, func() reflector.MimeParameterReflector { return reflector.XMLParameters{} }))

	must(r.RegisterMimeReturn(config.PluginXML, func() reflector.MimeReturnReflector { return reflector.XMLReturn{} }))
	must(r.RegisterMimeReturn(config.PluginText, func() reflector.MimeReturnReflector { return reflector.TextReturn{} }))
	must(r.RegisterMimeReturn(config.PluginOpaque, func() reflector.MimeReturnReflector { return reflector.OpaqueReturn{} }))

	must(r.RegisterImportProtocol(config.PluginSOAP, func(sel transport.Selector, _ []importer.MimeImporter) importer.Protocol {
		return importer.NewSOAP11(sel)
	}))
	must(r.RegisterImportProtocol(config.PluginSOAP12, func(sel transport.Selector, _ []importer.MimeImporter) importer.Protocol {
		return importer.NewSOAP12(sel)
	}))
	must(r.RegisterImportProtocol(config.PluginHTTPGet, func(_ transport.Selector, mimes []importer.MimeImporter) importer.Protocol {
		return importer.NewHTTPGet(mimes...)
	}))
	must(r.RegisterImportProtocol(config.PluginHTTPPost, func(_ transport.Selector, mimes []importer.MimeImporter) importer.Protocol {
		return importer.NewHTTPPost(mimes...)
	}))

	must(r.RegisterMimeImporter(config.PluginForm, func() importer.MimeImporter { return importer.FormImporter{} }))
	must(r.RegisterMimeImporter(config.PluginXML, func() importer.MimeImporter { return importer.XMLImporter{} }))
	must(r.RegisterMimeImporter(config.PluginText, func() importer.MimeImporter { return importer.TextImporter{} }))
	must(r.RegisterMimeImporter(config.PluginOpaque, func() importer.MimeImporter { return importer.OpaqueImporter{} }))

	return r
}

func register[F any](r *Registry, c *catalog[F], name string, f F, isNil bool) error {
	if isNil {
		return ErrNilFactory
	}
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := c.factories[name]; exists {
		return fmt.Errorf("%w: %s %s", ErrPluginExists, c.kind, name)
	}
	c.factories[name] = f
	return nil
}

// resolve looks up names in order.
func resolve[F any](r *Registry, c *catalog[F], names []string) ([]F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]F, 0, len(names))
	for _, n := range names {
		f, ok := c.factories[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s %q (known: %v)", ErrPluginNotFound, c.kind, n, c.names())
		}
		out = append(out, f)
	}
	return out, nil
}

// RegisterReflectProtocol adds a reflection protocol.
// Returns an error if the name is already registered.
func (r *Registry) RegisterReflectProtocol(name string, f ReflectProtocolFactory) error {
	return register(r, r.reflectProtocols, name, f, f == nil)
}

// RegisterMimeParameter adds an HTTP POST parameter reflector.
func (r *Registry) RegisterMimeParameter(name string, f func() reflector.MimeParameterReflector) error {
	return register(r, r.mimeParameters, name, f, f == nil)
}

// RegisterMimeReturn adds an HTTP return reflector.
func (r *Registry) RegisterMimeReturn(name string, f func() reflector.MimeReturnReflector) error {
	return register(r, r.mimeReturns, name, f, f == nil)
}

// RegisterImportProtocol adds an import protocol.
func (r *Registry) RegisterImportProtocol(name string, f ImportProtocolFactory) error {
	return register(r, r.importProtocols, name, f, f == nil)
}

// RegisterMimeImporter adds an HTTP MIME importer.
func (r *Registry) RegisterMimeImporter(name string, f func() importer.MimeImporter) error {
	return register(r, r.mimeImporters, name, f, f == nil)
}

// Unregister removes a plugin.
// Returns an error if the plugin is not found.
func (r *Registry) Unregister(kind Kind, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed bool
	switch kind {
	case KindReflectProtocol:
		removed = remove(r.reflectProtocols, name)
	case KindMimeParameter:
		removed = remove(r.mimeParameters, name)
	case KindMimeReturn:
		removed = remove(r.mimeReturns, name)
	case KindImportProtocol:
		removed = remove(r.importProtocols, name)
	case KindMimeImporter:
		removed = remove(r.mimeImporters, name)
	}
	if !removed {
		return fmt.Errorf("%w: %s %s", ErrPluginNotFound, kind, name)
	}
	return nil
}

func remove[F any](c *catalog[F], name string) bool {
	if _, ok := c.factories[name]; !ok {
		return false
	}
	delete(c.factories, name)
	return true
}

// Names returns the registered names of one kind, sorted.
func (r *Registry) Names(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch kind {
	case KindReflectProtocol:
		return r.reflectProtocols.names()
	case KindMimeParameter:
		return r.mimeParameters.names()
	case KindMimeReturn:
		return r.mimeReturns.names()
	case KindImportProtocol:
		return r.importProtocols.names()
	case KindMimeImporter:
		return r.mimeImporters.names()
	}
	return nil
}

// Count returns the number of registered plugins of every kind.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reflectProtocols.factories) +
		len(r.mimeParameters.factories) +
		len(r.mimeReturns.factories) +
		len(r.importProtocols.factories) +
		len(r.mimeImporters.factories)
}
