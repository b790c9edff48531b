package seatmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTripKeepsTree(t *testing.T) {
	res := inventoryScene(t)
	data, err := EncodeSnapshot(res)
	require.NoError(t, err)

	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, res.Stats, snap.Stats)

	row := snap.Root.FindByID("ZB-R1-P50")
	require.NotNil(t, row)
	assert.Equal(t, ShapeGroup, row.Kind)
	assert.Equal(t, "0.2", row.Key)
	assert.True(t, row.Purchasable)
	assert.Equal(t, "50", row.Ticket["price"])
	assert.Equal(t, ShapeRect, row.Children[0].Kind)
}

func TestSnapshotIsDeterministic(t *testing.T) {
	res := inventoryScene(t)
	first, err := EncodeSnapshot(res)
	require.NoError(t, err)
	second, err := EncodeSnapshot(res)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestDecodeSnapshotRejectsVersion(t *testing.T) {
	data, err := snapshotEnc.Marshal(Snapshot{Version: 99})
	require.NoError(t, err)
	_, err = DecodeSnapshot(data)
	assert.Error(t, err)

	_, err = EncodeSnapshot(nil)
	assert.Error(t, err)
}
