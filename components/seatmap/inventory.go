package seatmap

import (
	"sort"

	"github.com/samber/lo"
)

// TicketEntry is one purchasable shape in the inventory.
type TicketEntry struct {
	Key        string           `json:"key"`
	ID         string           `json:"id"`
	Kind       ShapeKind        `json:"kind"`
	Attributes TicketAttributes `json:"attributes"`
}

// InventoryBucket counts tickets sharing one attribute value.
type InventoryBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// InventoryReport summarizes the purchasable elements of a scene.
type InventoryReport struct {
	Shapes      int                          `json:"shapes"`
	Purchasable int                          `json:"purchasable"`
	ByAttribute map[string][]InventoryBucket `json:"by_attribute"`
	Tickets     []TicketEntry                `json:"tickets"`
}

// Buckets returns the counts for attr, or nil.
func (r InventoryReport) Buckets(attr string) []InventoryBucket {
	return r.ByAttribute[attr]
}

// BuildInventory walks root and groups its purchasable shapes by every
// ticket attribute they carry.
func BuildInventory(root *Shape) InventoryReport {
	report := InventoryReport{ByAttribute: map[string][]InventoryBucket{}}
	root.Walk(func(s *Shape) bool {
		report.Shapes++
		if s.Purchasable {
			report.Tickets = append(report.Tickets, TicketEntry{
				Key:        s.Key,
				ID:         s.ID,
				Kind:       s.Kind,
				Attributes: s.Ticket.Clone(),
			})
		}
		return true
	})
	report.Purchasable = len(report.Tickets)

	attrs := lo.Uniq(lo.FlatMap(report.Tickets, func(t TicketEntry, _ int) []string {
		return lo.Keys(map[string]string(t.Attributes))
	}))
	for _, attr := range attrs {
		carrying := lo.Filter(report.Tickets, func(t TicketEntry, _ int) bool {
			_, ok := t.Attributes[attr]
			return ok
		})
		groups := lo.GroupBy(carrying, func(t TicketEntry) string {
			return t.Attributes[attr]
		})
		buckets := make([]InventoryBucket, 0, len(groups))
		for value, entries := range groups {
			buckets = append(buckets, InventoryBucket{Value: value, Count: len(entries)})
		}
		sort.Slice(buckets, func(i, j int) bool {
			return buckets[i].Value < buckets[j].Value
		})
		report.ByAttribute[attr] = buckets
	}
	return report
}
