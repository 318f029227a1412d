package reflector

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Protocol describes a class in one wire protocol.
type Protocol interface {
	// Name suffixes every binding, port type and message the protocol
	// creates.
	Name() string
	// BeginClass adds the binding and port extensions.
	BeginClass(r *Reflection) error
	// ReflectMethod fills the current operation. Returning false declines
	// the method; an error aborts the class.
	ReflectMethod(r *Reflection) (bool, error)
	// EndClass runs once after every method has been offered.
	EndClass(r *Reflection) error
}

// Reflection is the state of one protocol pass over one class. Protocols read
// and extend it; the Reflector owns its lifecycle.
type Reflection struct {
	Definitions *description.Definitions
	Class       *service.Class
	Context     Context

	Service  *description.Service
	Port     *description.Port
	PortType *description.PortType
	Binding  *description.Binding

	// Set for the method being reflected.
	Method           *service.Method
	Operation        *description.Operation
	OperationBinding *description.OperationBinding
	InputMessage     *description.Message
	OutputMessage    *description.Message
}

// Namespace is the target namespace of generated constructs.
func (r *Reflection) Namespace() string {
	if r.Context.Namespace != "" {
		return r.Context.Namespace
	}
	return r.Definitions.TargetNamespace
}

// QName qualifies local with the target namespace.
func (r *Reflection) QName(local string) xmlns.QName {
	return xmlns.Name(r.Namespace(), local)
}

// Schema returns the schema fragment for the target namespace.
func (r *Reflection) Schema() *schema.Schema {
	return r.Definitions.Types.Ensure(r.Namespace())
}

// Logger returns the pass logger.
func (r *Reflection) Logger() *slog.Logger {
	return logging.OrNop(r.Context.Logger)
}

// ErrNoClass is returned when Reflect is called without a class.
var ErrNoClass = errors.New("no service class")

// Reflector adds service classes to a description.
type Reflector struct {
	defs   *description.Definitions
	logger *slog.Logger
}

// New returns a reflector writing into defs.
func New(defs *description.Definitions, logger *slog.Logger) *Reflector {
	return &Reflector{defs: defs, logger: logging.Component(logging.OrNop(logger), "reflector")}
}

// Definitions returns the description being built.
func (rf *Reflector) Definitions() *description.Definitions {
	return rf.defs
}

// Reflect runs one protocol pass over class. A binding of the same name that
// is marked empty is left alone and nothing is added.
func (rf *Reflector) Reflect(p Protocol, class *service.Class, ctx Context) error {
	if class == nil {
		return ErrNoClass
	}
	name := class.Name + p.Name()
	log := rf.logger.With("class", class.Name, "protocol", p.Name())
	if ctx.Logger == nil {
		ctx.Logger = log
	}

	if b := rf.defs.Binding(rf.defs.QName(name)); b != nil {
		if b.Empty {
			log.Debug("binding is a placeholder, skipping", "binding", name)
			return nil
		}
		return fmt.Errorf("binding %q: %w", name, description.ErrDuplicate)
	}

	r := &Reflection{Definitions: rf.defs, Class: class, Context: ctx}
	if err := rf.beginClass(r, p, name); err != nil {
		return err
	}
	if err := p.BeginClass(r); err != nil {
		rf.discard(r)
		return fmt.Errorf("%s: %w", name, err)
	}

	for _, m := range class.Methods {
		if err := rf.beginMethod(r, p, m); err != nil {
			rf.discard(r)
			return err
		}
		ok, err := p.ReflectMethod(r)
		if err != nil {
			rf.rollbackMethod(r)
			rf.discard(r)
			return fmt.Errorf("%s method %s: %w", name, m.Name, err)
		}
		if !ok {
			log.Debug("method not representable", "method", m.Name)
			rf.rollbackMethod(r)
			continue
		}
		rf.endMethod(r)
	}

	if err := p.EndClass(r); err != nil {
		rf.discard(r)
		return fmt.Errorf("%s: %w", name, err)
	}

	if len(r.Binding.Operations) == 0 {
		log.Info("no methods representable, binding dropped", "binding", name)
		rf.discard(r)
		return nil
	}
	log.Debug("reflected class", "binding", name, "operations", len(r.Binding.Operations))
	return nil
}

func (rf *Reflector) beginClass(r *Reflection, p Protocol, name string) error {
	r.PortType = &description.PortType{
		Name:   name,
		Origin: description.Origin{Protocol: p.Name(), Class: r.Class.Name},
	}
	if err := rf.defs.AddPortType(r.PortType); err != nil {
		return err
	}
	r.Binding = &description.Binding{Name: name, Type: rf.defs.QName(name)}
	if err := rf.defs.AddBinding(r.Binding); err != nil {
		rf.defs.RemovePortType(name)
		return err
	}
	r.Service = rf.defs.EnsureService(r.Class.Name)
	r.Port = &description.Port{Name: name, Binding: rf.defs.QName(name)}
	r.Service.Ports = append(r.Service.Ports, r.Port)
	return nil
}

// discard removes everything the pass created.
func (rf *Reflector) discard(r *Reflection) {
	for _, op := range r.PortType.Operations {
		rf.removeMessages(op)
	}
	rf.defs.RemovePortsFor(rf.defs.QName(r.Binding.Name))
	if len(r.Service.Ports) == 0 {
		rf.defs.RemoveService(r.Service.Name)
	}
	rf.defs.RemoveBinding(r.Binding.Name)
	// EndClass may have pointed the binding at a shared port type.
	if pt := rf.defs.PortType(r.Binding.Type); pt == r.PortType {
		rf.defs.RemovePortType(r.PortType.Name)
	}
}

func (rf *Reflector) beginMethod(r *Reflection, p Protocol, m *service.Method) error {
	opName := m.OperationName()
	in := &description.Message{Name: opName + p.Name() + "In"}
	out := &description.Message{Name: opName + p.Name() + "Out"}
	if err := rf.defs.AddMessage(in); err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	if err := rf.defs.AddMessage(out); err != nil {
		rf.defs.RemoveMessage(in.Name)
		return fmt.Errorf("method %s: %w", m.Name, err)
	}

	r.Method = m
	r.InputMessage = in
	r.OutputMessage = out
	r.Operation = &description.Operation{
		Name:          opName,
		Documentation: m.Documentation,
		Input:         &description.OperationMessage{Message: rf.defs.QName(in.Name)},
		Output:        &description.OperationMessage{Message: rf.defs.QName(out.Name)},
	}
	r.OperationBinding = &description.OperationBinding{
		Name:   opName,
		Input:  &description.MessageBinding{},
		Output: &description.MessageBinding{},
	}
	r.PortType.Operations = append(r.PortType.Operations, r.Operation)
	r.Binding.Operations = append(r.Binding.Operations, r.OperationBinding)
	return nil
}

func (rf *Reflector) rollbackMethod(r *Reflection) {
	r.PortType.RemoveOperation(r.Operation)
	r.Binding.RemoveOperation(r.OperationBinding)
	rf.removeMessages(r.Operation)
	rf.endMethod(r)
}

func (rf *Reflector) endMethod(r *Reflection) {
	r.Method = nil
	r.Operation = nil
	r.OperationBinding = nil
	r.InputMessage = nil
	r.OutputMessage = nil
}

func (rf *Reflector) removeMessages(op *description.Operation) {
	if op.Input != nil {
		rf.defs.RemoveMessage(op.Input.Message.Local)
	}
	if op.Output != nil {
		rf.defs.RemoveMessage(op.Output.Message.Local)
	}
}
