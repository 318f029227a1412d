package service

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is the import style declared by a class.
type Style string

// Styles.
const (
	StyleClient Style = "client"
	StyleServer Style = "server"
)

// Param is one method parameter.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Type Type   `json:"type" yaml:"type"`
}

// Method is one exposed service operation.
type Method struct {
	Name        string `json:"name" yaml:"name"`
	MessageName string `json:"messageName,omitempty" yaml:"messageName,omitempty"`
	Action      string `json:"action,omitempty" yaml:"action,omitempty"`
	// RequestElement overrides the name of the SOAP request element, which
	// otherwise follows OperationName.
	RequestElement string  `json:"requestElement,omitempty" yaml:"requestElement,omitempty"`
	Documentation  string  `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Params         []Param `json:"params,omitempty" yaml:"params,omitempty"`
	Return         Type    `json:"return,omitempty" yaml:"return,omitempty"`
}

// OperationName is the name the method is published under: the explicit
// message name when set, else the method name.
func (m *Method) OperationName() string {
	if m.MessageName != "" {
		return m.MessageName
	}
	return m.Name
}

// RequestElementName is the local name of the SOAP request element.
func (m *Method) RequestElementName() string {
	if m.RequestElement != "" {
		return m.RequestElement
	}
	return m.OperationName()
}

// HasFlatParams reports whether every parameter is a scalar or an array of
// scalars.
func (m *Method) HasFlatParams() bool {
	for _, p := range m.Params {
		if !p.Type.IsFlat() {
			return false
		}
	}
	return true
}

// Class is a group of methods reflected together.
type Class struct {
	Name      string             `json:"name" yaml:"name"`
	Namespace string             `json:"namespace" yaml:"namespace"`
	Location  string             `json:"location,omitempty" yaml:"location,omitempty"`
	Style     Style              `json:"style,omitempty" yaml:"style,omitempty"`
	Types     map[string][]Field `json:"types,omitempty" yaml:"types,omitempty"`
	Methods   []*Method          `json:"methods" yaml:"methods"`
}

// Common errors for class loading.
var (
	ErrNoName      = errors.New("name is required")
	ErrNoMethods   = errors.New("class declares no methods")
	ErrUnknownType = errors.New("unknown complex type")
)

// LoadClass reads a class from a YAML file.
func LoadClass(path string) (*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	c, err := ParseClass(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseClass decodes and validates a class from YAML.
func ParseClass(data []byte) (*Class, error) {
	var c Class
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// resolve validates the class and fills complex shapes from the types
// section.
func (c *Class) resolve() error {
	if c.Name == "" {
		return fmt.Errorf("class: %w", ErrNoName)
	}
	if len(c.Methods) == 0 {
		return ErrNoMethods
	}
	if c.Style == "" {
		c.Style = StyleClient
	}
	if c.Style != StyleClient && c.Style != StyleServer {
		return fmt.Errorf("invalid style %q", c.Style)
	}
	for i, m := range c.Methods {
		if m.Name == "" {
			return fmt.Errorf("methods[%d]: %w", i, ErrNoName)
		}
		for j := range m.Params {
			p := &m.Params[j]
			if p.Name == "" {
				return fmt.Errorf("method %s params[%d]: %w", m.Name, j, ErrNoName)
			}
			if p.Type.IsVoid() {
				return fmt.Errorf("method %s param %s: void parameter type", m.Name, p.Name)
			}
			if err := c.fill(&p.Type, 0); err != nil {
				return fmt.Errorf("method %s param %s: %w", m.Name, p.Name, err)
			}
		}
		if err := c.fill(&m.Return, 0); err != nil {
			return fmt.Errorf("method %s return: %w", m.Name, err)
		}
	}
	return nil
}

const maxTypeDepth = 16

func (c *Class) fill(t *Type, depth int) error {
	if depth > maxTypeDepth {
		return fmt.Errorf("type nesting deeper than %d", maxTypeDepth)
	}
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			return errors.New("array without element type")
		}
		return c.fill(t.Elem, depth+1)
	case KindComplex:
		if len(t.Fields) == 0 {
			fields, ok := c.Types[t.Name]
			if !ok {
				return fmt.Errorf("%w %q", ErrUnknownType, t.Name)
			}
			t.Fields = append([]Field(nil), fields...)
		}
		for i := range t.Fields {
			if err := c.fill(&t.Fields[i].Type, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
