package seatmap

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// DecodeScene decodes a scene payload. Comments and trailing commas are
// accepted so hand-edited venue files load as-is.
func DecodeScene(data []byte) (Scene, error) {
	var scene Scene
	if err := json.Unmarshal(jsonc.ToJSON(data), &scene); err != nil {
		return Scene{}, fmt.Errorf("seatmap: decode scene: %w", err)
	}
	return scene, nil
}

// NormalizeScene strips comments from a payload so it can be validated as
// strict JSON.
func NormalizeScene(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// ReadScene loads a scene file from disk.
func ReadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Scene{}, fmt.Errorf("seatmap: read scene %s: %w", path, err)
	}
	return DecodeScene(data)
}
