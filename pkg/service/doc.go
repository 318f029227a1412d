// Package service describes the operations a service class exposes: method
// names, parameter and return shapes, and the protocol-relevant overrides
// (message name, action). Reflection consumes these descriptors; they are
// never modified once reflection of a class begins.
//
// Classes are usually loaded from YAML:
//
//	name: Calculator
//	namespace: http://example.com/calc
//	location: /calc.asmx
//	methods:
//	  - name: Add
//	    params:
//	      - {name: a, type: int}
//	      - {name: b, type: int}
//	    return: int
//	  - name: GetStatus
//	    return: string
//
// Type shorthands are "void", any XML Schema builtin name ("string", "int",
// "base64Binary"), "[]T" for arrays, or the name of an entry in the class's
// types section for complex shapes.
package service
