package reflector

import (
	"fmt"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// AmbiguityError reports an operation a SOAP 1.2 receiver cannot route: it
// shares its request element with one operation and its action with another,
// so neither key identifies it.
type AmbiguityError struct {
	First   string
	Second  string
	Element xmlns.QName
	Action  string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("operation %s is ambiguous with %s: request element %s and action %q are both shared",
		e.First, e.Second, e.Element, e.Action)
}

// dispatch is one registered operation.
type dispatch struct {
	method    *service.Method
	operation *description.SOAP12Operation
	element   xmlns.QName
	action    string

	// The first operation registered with the same element or action. The
	// first owner of a key links to the later ones through these as well.
	sameElement *dispatch
	sameAction  *dispatch
}

// AmbiguityResolver decides whether a SOAP 1.2 receiver needs the action to
// dispatch a request. Operations are registered as they are reflected: a
// shared request element makes the action required, and a shared element and
// action is an error. Operations with an empty action never share one.
type AmbiguityResolver struct {
	byElement map[xmlns.QName]*dispatch
	byAction  map[string]*dispatch
}

// NewAmbiguityResolver returns an empty resolver.
func NewAmbiguityResolver() *AmbiguityResolver {
	return &AmbiguityResolver{
		byElement: make(map[xmlns.QName]*dispatch),
		byAction:  make(map[string]*dispatch),
	}
}

// Add registers an operation and updates the action-required flag of it and
// of every operation it collides with.
func (a *AmbiguityResolver) Add(m *service.Method, op *description.SOAP12Operation, element xmlns.QName, action string) error {
	d := &dispatch{method: m, operation: op, element: element, action: action}

	if owner, ok := a.byElement[element]; ok {
		d.sameElement = owner
		if owner.sameElement == nil {
			owner.sameElement = d
		}
	} else {
		a.byElement[element] = d
	}

	if action != "" {
		if owner, ok := a.byAction[action]; ok {
			d.sameAction = owner
			if owner.sameAction == nil {
				owner.sameAction = d
			}
		} else {
			a.byAction[action] = d
		}
	}

	if err := recheck(d, d); err != nil {
		return err
	}
	if d.sameElement != nil {
		if err := recheck(d.sameElement, d); err != nil {
			return err
		}
	}
	if d.sameAction != nil {
		if err := recheck(d.sameAction, d); err != nil {
			return err
		}
	}
	return nil
}

// recheck re-derives the flag of d after added was registered.
func recheck(d, added *dispatch) error {
	if d.sameElement != nil && d.sameAction != nil {
		other := added
		if other == d {
			other = d.sameElement
		}
		return &AmbiguityError{
			First:   d.method.Name,
			Second:  other.method.Name,
			Element: d.element,
			Action:  d.action,
		}
	}
	d.operation.SOAPActionRequired = d.sameElement != nil
	return nil
}
