package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/transport"
)

// Protocol imports the bindings of one wire protocol.
type Protocol interface {
	Name() string
	// IsBindingSupported reports whether the protocol understands the
	// binding. It has no side effects.
	IsBindingSupported(b *description.Binding) bool
	// BaseType names the stub base for the import style.
	BaseType(style service.Style) string
	// SOAPVersion is recorded on the client metadata.
	SOAPVersion() transport.SOAPVersion
	// ImportOperation builds the stub for op. A nil stub without error
	// skips the operation; the protocol records why on op.
	ImportOperation(op *Operation) (*Stub, error)
}

// Operation is one operation being imported, with everything a protocol needs
// to resolve it.
type Operation struct {
	Definitions *description.Definitions
	Binding     *description.Binding
	PortType    *description.PortType
	Style       service.Style

	Abstract *description.Operation
	Bound    *description.OperationBinding
	Input    *description.Message
	Output   *description.Message

	types    *typeMapper
	warnings WarningFlags
	messages []string
}

// Name is the operation name.
func (o *Operation) Name() string { return o.Bound.Name }

// Warn raises flag with a message naming the operation.
func (o *Operation) Warn(flag WarningFlags, format string, args ...any) {
	o.warnings |= flag
	o.messages = append(o.messages, fmt.Sprintf("binding %s operation %s: %s",
		o.Binding.Name, o.Name(), fmt.Sprintf(format, args...)))
}

// Fatal returns a *ConfigError naming the operation.
func (o *Operation) Fatal(format string, args ...any) error {
	return &ConfigError{Binding: o.Binding.Name, Operation: o.Name(), Message: fmt.Sprintf(format, args...)}
}

// InputExtensions returns the extensions of the bound input, which may be
// absent.
func (o *Operation) InputExtensions() *description.Extensions {
	if o.Bound.Input == nil {
		return &description.Extensions{}
	}
	return &o.Bound.Input.Extensions
}

// OutputExtensions returns the extensions of the bound output.
func (o *Operation) OutputExtensions() *description.Extensions {
	if o.Bound.Output == nil {
		return &description.Extensions{}
	}
	return &o.Bound.Output.Extensions
}

// Part selects the part of msg a binding extension refers to. An empty name
// selects the only part of a single-part message.
func (o *Operation) Part(msg *description.Message, name string) (*description.MessagePart, error) {
	if msg == nil || len(msg.Parts) == 0 {
		return nil, o.Fatal("message has no parts but one is required")
	}
	if name == "" {
		if len(msg.Parts) > 1 {
			return nil, o.Fatal("message %s has %d parts; a part name is required", msg.Name, len(msg.Parts))
		}
		return msg.Parts[0], nil
	}
	if p := msg.Part(name); p != nil {
		return p, nil
	}
	return nil, o.Fatal("message %s has no part %q", msg.Name, name)
}

// Options configures an import.
type Options struct {
	// Style selects client proxies or server skeletons.
	Style service.Style
	// BaseURL is used for bindings whose port declares no address.
	BaseURL string
	// URLConfigKey is recorded on every client for runtime URL lookup.
	URLConfigKey string
	// FailOnSchemaErrors stops the import when the schema set has errors.
	FailOnSchemaErrors bool
}

// Importer selects a protocol per binding and collects the stubs.
type Importer struct {
	protocols []Protocol
	opts      Options
	compiler  *schema.Compiler
	logger    *slog.Logger
}

// New returns an importer trying protocols in order.
func New(protocols []Protocol, opts Options, logger *slog.Logger) *Importer {
	if opts.Style == "" {
		opts.Style = service.StyleClient
	}
	logger = logging.Component(logging.OrNop(logger), "importer")
	return &Importer{
		protocols: protocols,
		opts:      opts,
		compiler:  schema.NewCompiler(logger),
		logger:    logger,
	}
}

// Import produces the clients for every supported binding of defs. Skipped
// bindings and operations are reported on the result; a *ConfigError stops
// the import.
func (im *Importer) Import(defs *description.Definitions) (*Result, error) {
	res := &Result{}

	sw := im.compiler.Compile(defs.Types)
	if len(sw) > 0 {
		res.Warnings |= SchemaValidation
		res.Messages = append(res.Messages, sw.Strings()...)
		if sw.HasErrors() && im.opts.FailOnSchemaErrors {
			return res, fmt.Errorf("%w: %d errors", ErrSchemaInvalid, len(sw.Errors()))
		}
	}
	types := newTypeMapper(defs.Types)

	for _, b := range defs.Bindings() {
		if b.Empty {
			continue
		}
		client, err := im.importBinding(defs, b, types, res)
		if err != nil {
			return res, err
		}
		if client != nil {
			res.Clients = append(res.Clients, client)
		}
	}

	stubs := 0
	for _, c := range res.Clients {
		stubs += len(c.Stubs)
	}
	if stubs == 0 {
		res.Warnings |= NoMethodsGenerated
	}
	im.logger.Info("import finished",
		"definitions", defs.Name,
		"clients", len(res.Clients),
		"stubs", stubs,
		"warnings", res.Warnings.String())
	return res, nil
}

func (im *Importer) warn(res *Result, flag WarningFlags, format string, args ...any) {
	res.Warnings |= flag
	msg := fmt.Sprintf(format, args...)
	res.Messages = append(res.Messages, msg)
	im.logger.Warn(msg)
}

func (im *Importer) selectProtocol(b *description.Binding) Protocol {
	for _, p := range im.protocols {
		if p.IsBindingSupported(b) {
			return p
		}
	}
	return nil
}

func (im *Importer) importBinding(defs *description.Definitions, b *description.Binding, types *typeMapper, res *Result) (*Client, error) {
	p := im.selectProtocol(b)
	if p == nil {
		im.warn(res, UnsupportedBindingsIgnored, "binding %s: no importer supports it", b.Name)
		return nil, nil
	}
	if im.opts.Style == service.StyleServer && p.SOAPVersion() == transport.SOAPNone {
		im.warn(res, UnsupportedBindingsIgnored, "binding %s: server skeletons cannot be generated for %s", b.Name, p.Name())
		return nil, nil
	}
	if u, ok := firstUnknown(&b.Extensions, true); ok {
		im.warn(res, RequiredExtensionsIgnored, "binding %s: required extension %s is not understood", b.Name, u.Name)
		return nil, nil
	}
	pt := defs.PortType(b.Type)
	if pt == nil {
		return nil, &ConfigError{Binding: b.Name, Message: fmt.Sprintf("port type %s is not defined", b.Type)}
	}

	log := im.logger.With("binding", b.Name, "protocol", p.Name())
	client := &Client{
		Binding:  b.Name,
		Protocol: p.Name(),
		BaseType: p.BaseType(im.opts.Style),
		Info:     im.clientInfo(defs, b, p.SOAPVersion()),
	}

	names := make(map[string]int)
	for _, bound := range b.Operations {
		op := &Operation{
			Definitions: defs,
			Binding:     b,
			PortType:    pt,
			Style:       im.opts.Style,
			Bound:       bound,
			types:       types,
		}
		stub, err := im.importOperation(p, op)
		res.Warnings |= op.warnings
		res.Messages = append(res.Messages, op.messages...)
		for _, msg := range op.messages {
			log.Warn(msg)
		}
		if err != nil {
			return nil, err
		}
		if stub == nil {
			continue
		}
		stub.Name = uniqueName(names, stub.Operation)
		stub.Warnings = append(stub.Warnings, op.messages...)
		client.Stubs = append(client.Stubs, stub)
	}
	log.Debug("imported binding", "stubs", len(client.Stubs))
	return client, nil
}

func (im *Importer) importOperation(p Protocol, op *Operation) (*Stub, error) {
	op.Abstract = op.PortType.Operation(op.Bound.Name)
	if op.Abstract == nil {
		op.Warn(UnsupportedOperationsIgnored, "not declared by port type %s", op.PortType.Name)
		return nil, nil
	}
	if op.Abstract.Input != nil {
		op.Input = op.Definitions.Message(op.Abstract.Input.Message)
	}
	if op.Abstract.Output != nil {
		op.Output = op.Definitions.Message(op.Abstract.Output.Message)
	}

	for _, ext := range []*description.Extensions{&op.Bound.Extensions, op.InputExtensions(), op.OutputExtensions()} {
		if u, ok := firstUnknown(ext, true); ok {
			op.Warn(RequiredExtensionsIgnored, "required extension %s is not understood", u.Name)
			op.Warn(UnsupportedOperationsIgnored, "skipped")
			return nil, nil
		}
		if u, ok := firstUnknown(ext, false); ok {
			op.Warn(OptionalExtensionsIgnored, "optional extension %s ignored", u.Name)
		}
	}

	stub, err := p.ImportOperation(op)
	if err != nil {
		var ce *ConfigError
		if !errors.As(err, &ce) {
			err = &ConfigError{Binding: op.Binding.Name, Operation: op.Name(), Message: "import failed", Cause: err}
		}
		return nil, err
	}
	if stub == nil {
		if !op.warnings.Has(UnsupportedOperationsIgnored) {
			op.Warn(UnsupportedOperationsIgnored, "not supported by %s", p.Name())
		}
		return nil, nil
	}
	stub.Operation = op.Name()
	stub.Documentation = op.Abstract.Documentation
	return stub, nil
}

// clientInfo records the address of the first port bound to b.
func (im *Importer) clientInfo(defs *description.Definitions, b *description.Binding, version transport.SOAPVersion) transport.ClientInfo {
	var url string
	for _, port := range defs.PortsFor(defs.QName(b.Name)) {
		if addr, ok := description.Find[description.AddressKind](&port.Extensions); ok {
			url = addr.Location()
			break
		}
	}
	return transport.NewClientInfo(url, im.opts.BaseURL, version, im.opts.URLConfigKey)
}

func firstUnknown(ext *description.Extensions, required bool) (*description.Unknown, bool) {
	for _, u := range description.FindAll[*description.Unknown](ext) {
		if u.Required == required {
			return u, true
		}
	}
	return nil, false
}

// uniqueName returns name, suffixed with a counter when it was seen before.
func uniqueName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	candidate := name + strconv.Itoa(n)
	for seen[candidate] > 0 {
		n++
		candidate = name + strconv.Itoa(n)
	}
	seen[candidate] = 1
	return candidate
}
