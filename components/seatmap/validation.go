package seatmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidScene reports a scene payload that failed structural validation.
var ErrInvalidScene = errors.New("seatmap: invalid scene payload")

const sceneSchemaName = "scene.json"

// sceneSchema checks structure only. Unknown tags and malformed attribute
// values are left to the converter, which degrades them gracefully.
const sceneSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["root"],
  "properties": {
    "root": {"$ref": "#/definitions/node"},
    "viewBox": {
      "type": "array",
      "items": {"type": "number", "minimum": 0},
      "minItems": 2,
      "maxItems": 2
    }
  },
  "definitions": {
    "node": {
      "type": "object",
      "properties": {
        "type": {"type": "string"},
        "tagName": {"type": "string"},
        "properties": {"type": "object"},
        "value": {"type": "string"},
        "children": {
          "type": "array",
          "items": {"$ref": "#/definitions/node"}
        }
      }
    }
  }
}`

// SceneValidator validates raw scene payloads before decoding.
type SceneValidator interface {
	Validate(payload []byte) error
}

// JSONSchemaValidator validates scene payloads with jsonschema v5. The schema
// is compiled once on first use.
type JSONSchemaValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewJSONSchemaValidator builds a validator for the scene schema.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate ensures payload is a structurally valid scene document.
func (v *JSONSchemaValidator) Validate(payload []byte) error {
	schema, err := v.compiled()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return nil
}

func (v *JSONSchemaValidator) compiled() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(sceneSchemaName, strings.NewReader(sceneSchema)); err != nil {
			v.err = fmt.Errorf("seatmap: load scene schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile(sceneSchemaName)
		if v.err != nil {
			v.err = fmt.Errorf("seatmap: compile scene schema: %w", v.err)
		}
	})
	return v.schema, v.err
}

type noopSceneValidator struct{}

func (noopSceneValidator) Validate([]byte) error { return nil }
