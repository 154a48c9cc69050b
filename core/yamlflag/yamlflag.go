// Package yamlflag provides a command line flag that accepts a YAML or JSON document.
package yamlflag

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaError indicates the document failed JSON schema validation.
type SchemaError struct {
	*gojsonschema.Result
}

func (e SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprint(&b, "document failed schema validation:")
	for _, desc := range e.Result.Errors() {
		fmt.Fprint(&b, "\n- ", desc)
	}
	return b.String()
}

// Value is a flag value that recognizes a YAML document.
//
// The YAML document can be specified directly on the command line:
//
//	--flag="key: value"
//
// Or it can be read from a file, when the flag value starts with '@':
//
//	--flag=@file.yaml
//
// Since JSON is a subset of YAML, JSON documents are accepted too.
type Value struct {
	value  any
	schema *gojsonschema.Schema
}

// New creates a Value.
// ptr must be a pointer to a struct that can be unmarshaled from JSON.
// schema is an optional JSON schema that the document must satisfy.
// Panics if ptr is not a pointer or schema is invalid.
func New(ptr any, schema []byte) *Value {
	if val := reflect.ValueOf(ptr); val.Kind() != reflect.Ptr {
		panic(val.Kind())
	}

	v := &Value{value: ptr}
	if len(schema) > 0 {
		var e error
		if v.schema, e = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema)); e != nil {
			panic(e)
		}
	}
	return v
}

// Get implements flag.Getter.
func (v *Value) Get() any {
	return v.value
}

// Set implements flag.Value.
func (v *Value) Set(s string) error {
	doc := []byte(s)
	if strings.HasPrefix(s, "@") {
		file, e := os.ReadFile(s[1:])
		if e != nil {
			return e
		}
		doc = file
	}
	return v.Unmarshal(doc)
}

// Unmarshal decodes a YAML document into the value.
func (v *Value) Unmarshal(doc []byte) error {
	j, e := yaml.YAMLToJSON(doc)
	if e != nil {
		return e
	}

	if v.schema != nil {
		result, e := v.schema.Validate(gojsonschema.NewBytesLoader(j))
		if e != nil {
			return e
		}
		if !result.Valid() {
			return SchemaError{result}
		}
	}

	return json.Unmarshal(j, v.value)
}

func (v *Value) String() string {
	if v == nil || v.value == nil {
		return ""
	}
	j, _ := json.Marshal(v.value)
	return string(j)
}
