package seatmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryScene(t *testing.T) *Result {
	t.Helper()
	return convertScene(t, el("g", map[string]any{"id": "tickets"},
		el("g", map[string]any{"id": "ZA-R1"}, el("rect", nil)),
		el("g", map[string]any{"id": "ZA-R2"}, el("rect", nil)),
		el("g", map[string]any{"id": "ZB-R1-P50"}, el("rect", nil)),
		el("rect", map[string]any{"id": "curtain"}),
	))
}

func TestBuildInventoryGroupsByAttribute(t *testing.T) {
	report := BuildInventory(inventoryScene(t).Root)

	assert.Equal(t, 8, report.Shapes)
	assert.Equal(t, 3, report.Purchasable)
	assert.Equal(t, []InventoryBucket{{Value: "A", Count: 2}, {Value: "B", Count: 1}}, report.Buckets("zone"))
	assert.Equal(t, []InventoryBucket{{Value: "1", Count: 2}, {Value: "2", Count: 1}}, report.Buckets("row"))
	assert.Equal(t, []InventoryBucket{{Value: "50", Count: 1}}, report.Buckets("price"))
	assert.Nil(t, report.Buckets("seat"))

	require.Len(t, report.Tickets, 3)
	assert.Equal(t, "ZA-R1", report.Tickets[0].ID)
	assert.Equal(t, ShapeGroup, report.Tickets[0].Kind)
}

func TestRenderInventoryChart(t *testing.T) {
	report := BuildInventory(inventoryScene(t).Root)
	html, err := RenderInventoryChart(report, "zone", ChartOptions{Title: "Zones"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "Zones"), "chart should carry its title")
	assert.Contains(t, html, "tickets")

	_, err = RenderInventoryChart(report, "colour", ChartOptions{})
	assert.Error(t, err)
}
