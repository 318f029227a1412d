package description

import (
	"errors"
	"fmt"

	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// ErrDuplicate is returned when an entity name is already taken.
var ErrDuplicate = errors.New("duplicate name")

// Definitions is a WSDL document: the owner of every entity in the graph.
type Definitions struct {
	Name            string
	TargetNamespace string
	Types           *schema.Set

	messages  collection[*Message]
	portTypes collection[*PortType]
	bindings  collection[*Binding]
	services  collection[*Service]
}

// New returns empty definitions for the target namespace.
func New(name, targetNamespace string) *Definitions {
	return &Definitions{
		Name:            name,
		TargetNamespace: targetNamespace,
		Types:           schema.NewSet(),
	}
}

// QName qualifies local with the target namespace.
func (d *Definitions) QName(local string) xmlns.QName {
	return xmlns.Name(d.TargetNamespace, local)
}

// Messages returns the messages in document order.
func (d *Definitions) Messages() []*Message { return d.messages.all() }

// AddMessage adds m. Names must be unique.
func (d *Definitions) AddMessage(m *Message) error { return d.messages.add(m, "message") }

// Message resolves a message reference.
func (d *Definitions) Message(q xmlns.QName) *Message {
	if !d.owns(q) {
		return nil
	}
	return d.messages.get(q.Local)
}

// RemoveMessage deletes the message called name.
func (d *Definitions) RemoveMessage(name string) bool { return d.messages.remove(name) }

// PortTypes returns the port types in document order.
func (d *Definitions) PortTypes() []*PortType { return d.portTypes.all() }

// AddPortType adds pt. Names must be unique.
func (d *Definitions) AddPortType(pt *PortType) error { return d.portTypes.add(pt, "portType") }

// PortType resolves a port type reference.
func (d *Definitions) PortType(q xmlns.QName) *PortType {
	if !d.owns(q) {
		return nil
	}
	return d.portTypes.get(q.Local)
}

// RemovePortType deletes the port type called name.
func (d *Definitions) RemovePortType(name string) bool { return d.portTypes.remove(name) }

// Bindings returns the bindings in document order.
func (d *Definitions) Bindings() []*Binding { return d.bindings.all() }

// AddBinding adds b. Names must be unique.
func (d *Definitions) AddBinding(b *Binding) error { return d.bindings.add(b, "binding") }

// Binding resolves a binding reference.
func (d *Definitions) Binding(q xmlns.QName) *Binding {
	if !d.owns(q) {
		return nil
	}
	return d.bindings.get(q.Local)
}

// RemoveBinding deletes the binding called name.
func (d *Definitions) RemoveBinding(name string) bool { return d.bindings.remove(name) }

// Services returns the services in document order.
func (d *Definitions) Services() []*Service { return d.services.all() }

// AddService adds s. Names must be unique.
func (d *Definitions) AddService(s *Service) error { return d.services.add(s, "service") }

// Service returns the service called name.
func (d *Definitions) Service(name string) *Service { return d.services.get(name) }

// RemoveService deletes the service called name.
func (d *Definitions) RemoveService(name string) bool { return d.services.remove(name) }

// EnsureService returns the service called name, creating it if needed.
func (d *Definitions) EnsureService(name string) *Service {
	if s := d.services.get(name); s != nil {
		return s
	}
	s := &Service{Name: name}
	_ = d.services.add(s, "service")
	return s
}

// PortsFor returns every port bound to the binding.
func (d *Definitions) PortsFor(binding xmlns.QName) []*Port {
	var out []*Port
	for _, s := range d.services.all() {
		for _, p := range s.Ports {
			if p.Binding == binding {
				out = append(out, p)
			}
		}
	}
	return out
}

// RemovePortsFor deletes every port bound to the binding.
func (d *Definitions) RemovePortsFor(binding xmlns.QName) int {
	n := 0
	for _, s := range d.services.all() {
		kept := s.Ports[:0]
		for _, p := range s.Ports {
			if p.Binding == binding {
				n++
				continue
			}
			kept = append(kept, p)
		}
		s.Ports = kept
	}
	return n
}

func (d *Definitions) owns(q xmlns.QName) bool {
	return q.Space == d.TargetNamespace || q.Space == ""
}

// Message is a wsdl:message.
type Message struct {
	Name  string
	Parts []*MessagePart
}

func (m *Message) entityName() string { return m.Name }

// Part returns the part called name.
func (m *Message) Part(name string) *MessagePart {
	for _, p := range m.Parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MessagePart is a wsdl:part.
type MessagePart struct {
	Name       string
	Element    xmlns.QName
	Type       xmlns.QName
	Extensions Extensions
}

// Protocol names. They suffix generated binding, port type and message
// names and label port type origins.
const (
	ProtocolSOAP     = "Soap"
	ProtocolSOAP12   = "Soap12"
	ProtocolHTTPGet  = "HttpGet"
	ProtocolHTTPPost = "HttpPost"
)

// Origin records which protocol pass created a port type, and for which
// service class.
type Origin struct {
	Protocol string
	Class    string
}

// PortType is a wsdl:portType.
type PortType struct {
	Name       string
	Operations []*Operation
	Origin     Origin
}

func (pt *PortType) entityName() string { return pt.Name }

// Operation returns the first operation called name.
func (pt *PortType) Operation(name string) *Operation {
	for _, op := range pt.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// RemoveOperation deletes op.
func (pt *PortType) RemoveOperation(op *Operation) {
	for i, o := range pt.Operations {
		if o == op {
			pt.Operations = append(pt.Operations[:i], pt.Operations[i+1:]...)
			return
		}
	}
}

// Operation is an abstract portType operation.
type Operation struct {
	Name          string
	Documentation string
	Input         *OperationMessage
	Output        *OperationMessage
}

// OperationMessage is the input or output of an abstract operation.
type OperationMessage struct {
	Name    string
	Message xmlns.QName
}

// Binding is a wsdl:binding. A binding marked Empty is a placeholder that
// reflection leaves untouched.
type Binding struct {
	Name       string
	Type       xmlns.QName
	Operations []*OperationBinding
	Extensions Extensions
	Empty      bool
}

func (b *Binding) entityName() string { return b.Name }

// Operation returns the first operation binding called name.
func (b *Binding) Operation(name string) *OperationBinding {
	for _, op := range b.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// RemoveOperation deletes op.
func (b *Binding) RemoveOperation(op *OperationBinding) {
	for i, o := range b.Operations {
		if o == op {
			b.Operations = append(b.Operations[:i], b.Operations[i+1:]...)
			return
		}
	}
}

// OperationBinding binds one operation to the protocol.
type OperationBinding struct {
	Name       string
	Input      *MessageBinding
	Output     *MessageBinding
	Extensions Extensions
}

// MessageBinding binds an operation input or output.
type MessageBinding struct {
	Name       string
	Extensions Extensions
}

// Service is a wsdl:service.
type Service struct {
	Name  string
	Ports []*Port
}

func (s *Service) entityName() string { return s.Name }

// Port returns the port called name.
func (s *Service) Port(name string) *Port {
	for _, p := range s.Ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Port binds a binding to an address.
type Port struct {
	Name       string
	Binding    xmlns.QName
	Extensions Extensions
}

type named interface {
	comparable
	entityName() string
}

// collection keeps entities in insertion order with a name index.
type collection[T named] struct {
	items []T
	index map[string]T
}

func (c *collection[T]) add(item T, kind string) error {
	name := item.entityName()
	if c.index == nil {
		c.index = make(map[string]T)
	}
	if _, ok := c.index[name]; ok {
		return fmt.Errorf("%s %q: %w", kind, name, ErrDuplicate)
	}
	c.index[name] = item
	c.items = append(c.items, item)
	return nil
}

func (c *collection[T]) get(name string) T {
	return c.index[name]
}

func (c *collection[T]) remove(name string) bool {
	item, ok := c.index[name]
	if !ok {
		return false
	}
	delete(c.index, name)
	for i, it := range c.items {
		if it == item {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) all() []T {
	return append([]T(nil), c.items...)
}
