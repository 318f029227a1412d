package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calculatorYAML = `
name: Calculator
namespace: http://example.com/calc
location: /calc.asmx
types:
  Point:
    - {name: x, type: int}
    - {name: y, type: int}
methods:
  - name: Add
    params:
      - {name: a, type: int}
      - {name: b, type: int}
    return: int
  - name: Sum
    messageName: SumAll
    action: urn:sum
    params:
      - {name: values, type: "[]int"}
    return: int
  - name: Move
    params:
      - {name: p, type: Point}
    return: Point
  - name: Ping
`

func TestParseClass(t *testing.T) {
	c, err := ParseClass([]byte(calculatorYAML))
	require.NoError(t, err)

	assert.Equal(t, "Calculator", c.Name)
	assert.Equal(t, StyleClient, c.Style)
	require.Len(t, c.Methods, 4)

	add := c.Methods[0]
	assert.Equal(t, Scalar("int"), add.Return)
	assert.True(t, add.HasFlatParams())
	assert.Equal(t, "Add", add.OperationName())

	sum := c.Methods[1]
	assert.Equal(t, "SumAll", sum.OperationName())
	assert.Equal(t, KindArray, sum.Params[0].Type.Kind)
	assert.True(t, sum.HasFlatParams())

	move := c.Methods[2]
	assert.False(t, move.HasFlatParams())
	require.Len(t, move.Return.Fields, 2)
	assert.Equal(t, "x", move.Return.Fields[0].Name)

	assert.True(t, c.Methods[3].Return.IsVoid())
}

func TestParseClass_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no name", "methods: [{name: A}]", ErrNoName},
		{"no methods", "name: C", ErrNoMethods},
		{"unknown type", "name: C\nmethods: [{name: A, return: Thing}]", ErrUnknownType},
		{"unnamed method", "name: C\nmethods: [{return: int}]", ErrNoName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClass([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
		flat bool
	}{
		{"string", "string", true},
		{"[]string", "[]string", true},
		{"[][]int", "[][]int", false},
		{"User", "User", false},
		{"", "void", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.String())
			assert.Equal(t, tt.flat, typ.IsFlat())
		})
	}

	_, err := ParseType("[]void")
	assert.Error(t, err)
	_, err = ParseType("map[string]int")
	assert.Error(t, err)
}

func TestType_ElementName(t *testing.T) {
	assert.Equal(t, "string", Scalar("string").ElementName())
	assert.Equal(t, "ArrayOfString", ArrayOf(Scalar("string")).ElementName())
	assert.Equal(t, "ArrayOfUser", ArrayOf(Complex("User")).ElementName())
}

func TestLoadClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(calculatorYAML), 0o600))

	c, err := LoadClass(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/calc", c.Namespace)

	_, err = LoadClass(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
