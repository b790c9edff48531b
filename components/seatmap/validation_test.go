package seatmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `{
  // exported from the venue editor
  "viewBox": [1000, 800],
  "root": {
    "type": "element",
    "tagName": "g",
    "children": [
      {"type": "element", "tagName": "g", "properties": {"id": "tickets"}, "children": [
        {"type": "element", "tagName": "g", "properties": {"id": "ZV-SA-r0012"}, "children": [
          {"type": "element", "tagName": "rect", "properties": {"width": "10", "height": "10"}},
        ]}
      ]}
    ]
  }
}`

func TestDecodeSceneAcceptsComments(t *testing.T) {
	scene, err := DecodeScene([]byte(sampleScene))
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1000, Height: 800}, scene.Size())
	assert.Equal(t, "tickets", scene.Root.Children[0].ID())
}

func TestJSONSchemaValidatorAcceptsScene(t *testing.T) {
	v := NewJSONSchemaValidator()
	require.NoError(t, v.Validate(NormalizeScene([]byte(sampleScene))))
}

func TestJSONSchemaValidatorRejectsStructuralErrors(t *testing.T) {
	v := NewJSONSchemaValidator()
	cases := map[string]string{
		"missing root":       `{"viewBox": [1, 1]}`,
		"children not array": `{"root": {"tagName": "g", "children": {}}}`,
		"short viewBox":      `{"root": {}, "viewBox": [1]}`,
		"not json":           `{"root":`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			err := v.Validate([]byte(payload))
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestJSONSchemaValidatorLeavesUnknownTagsToConverter(t *testing.T) {
	v := NewJSONSchemaValidator()
	assert.NoError(t, v.Validate([]byte(`{"root": {"tagName": "foreignObject", "properties": {"width": "abc"}}}`)))
}

func TestReadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venue.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0o600))
	scene, err := ReadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "g", scene.Root.TagName)

	_, err = ReadScene(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
