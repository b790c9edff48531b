package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	seatmap "github.com/goliatone/go-seatmap/components/seatmap"
)

type inventoryService interface {
	Inventory(ctx context.Context, sessionID string) (seatmap.InventoryReport, error)
}

// InventoryQuery summarizes the purchasable shapes of a session.
type InventoryQuery struct {
	service inventoryService
}

// NewInventoryQuery builds the query.
func NewInventoryQuery(service inventoryService) *InventoryQuery {
	return &InventoryQuery{service: service}
}

var _ gocommand.Querier[SessionInput, seatmap.InventoryReport] = (*InventoryQuery)(nil)

// Query builds the inventory report.
func (q *InventoryQuery) Query(ctx context.Context, input SessionInput) (seatmap.InventoryReport, error) {
	return q.service.Inventory(ctx, input.SessionID)
}
