package seatmap

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// SnapshotVersion identifies the snapshot layout.
const SnapshotVersion = 1

// Snapshot is the compact transfer form of a converted scene.
type Snapshot struct {
	Version int          `json:"version"`
	Size    Size         `json:"size"`
	Root    *Shape       `json:"root"`
	Stats   ConvertStats `json:"stats"`
}

// Core deterministic encoding: the same tree always yields the same bytes,
// so render hosts can compare snapshots cheaply.
var (
	snapshotEnc cbor.EncMode
	snapshotDec cbor.DecMode
)

func init() {
	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	snapshotEnc, err = encOptions.EncMode()
	if err != nil {
		panic("seatmap: CBOR encoder initialization failed: " + err.Error())
	}
	snapshotDec, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("seatmap: CBOR decoder initialization failed: " + err.Error())
	}
}

// EncodeSnapshot serializes a conversion result to CBOR.
func EncodeSnapshot(res *Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("seatmap: snapshot of nil result")
	}
	data, err := snapshotEnc.Marshal(Snapshot{
		Version: SnapshotVersion,
		Size:    res.Size,
		Root:    res.Root,
		Stats:   res.Stats,
	})
	if err != nil {
		return nil, fmt.Errorf("seatmap: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a CBOR snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := snapshotDec.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("seatmap: decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("seatmap: unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}
