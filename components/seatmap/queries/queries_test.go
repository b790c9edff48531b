package queries

import (
	"context"
	"testing"

	seatmap "github.com/goliatone/go-seatmap/components/seatmap"
)

type stubSessionService struct {
	calls    int
	lastID   string
	shapes   *seatmap.Result
	state    seatmap.ViewportState
	report   seatmap.InventoryReport
	queryErr error
}

func (s *stubSessionService) Shapes(_ context.Context, id string) (*seatmap.Result, error) {
	s.calls++
	s.lastID = id
	return s.shapes, s.queryErr
}

func (s *stubSessionService) ViewportState(_ context.Context, id string) (seatmap.ViewportState, error) {
	s.calls++
	s.lastID = id
	return s.state, s.queryErr
}

func (s *stubSessionService) Inventory(_ context.Context, id string) (seatmap.InventoryReport, error) {
	s.calls++
	s.lastID = id
	return s.report, s.queryErr
}

func TestShapesQuery(t *testing.T) {
	service := &stubSessionService{shapes: &seatmap.Result{Root: &seatmap.Shape{Key: "0"}}}
	res, err := NewShapesQuery(service).Query(context.Background(), SessionInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if res.Root.Key != "0" || service.lastID != "s1" {
		t.Fatalf("unexpected result %+v for %s", res, service.lastID)
	}
}

func TestViewportQuery(t *testing.T) {
	service := &stubSessionService{state: seatmap.ViewportState{Scale: 2}}
	state, err := NewViewportQuery(service).Query(context.Background(), SessionInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if state.Scale != 2 {
		t.Fatalf("expected scale 2, got %v", state.Scale)
	}
}

func TestInventoryQuery(t *testing.T) {
	service := &stubSessionService{report: seatmap.InventoryReport{Purchasable: 3}}
	report, err := NewInventoryQuery(service).Query(context.Background(), SessionInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if report.Purchasable != 3 || service.calls != 1 {
		t.Fatalf("unexpected report %+v after %d calls", report, service.calls)
	}
}
