package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	schemagen "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "wsdlkit-config.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema reflects the JSON Schema of Config. Unknown keys are rejected by
// the schema.
func Schema() *schemagen.Schema {
	r := &schemagen.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		Anonymous:      true,
	}
	return r.Reflect(&Config{})
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

func compileSchema() (*jsonschema.Schema, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaResource)
}

// validateDocument checks a decoded YAML document against the schema. The
// document is round-tripped through encoding/json first so that it only
// holds the types the validator understands.
func validateDocument(doc any) *ValidationResult {
	result := &ValidationResult{}

	schemaOnce.Do(func() {
		compiledSchema, schemaErr = compileSchema()
	})
	if schemaErr != nil {
		result.AddError("", fmt.Sprintf("schema compilation error: %v", schemaErr))
		return result
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		result.AddError("", fmt.Sprintf("document cannot be represented as JSON: %v", err))
		return result
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		result.AddError("", err.Error())
		return result
	}

	if err := compiledSchema.Validate(normalized); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			collectSchemaErrors(ve, result)
		} else {
			result.AddError("", err.Error())
		}
	}
	return result
}

// collectSchemaErrors adds the leaf causes of err.
func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(fieldFromPointer(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// fieldFromPointer turns a JSON pointer into dot notation.
func fieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
