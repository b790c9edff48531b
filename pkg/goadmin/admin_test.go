package goadmin_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-seatmap/pkg/goadmin"
	seatmappkg "github.com/goliatone/go-seatmap/pkg/seatmap"
)

type stubMenuBuilder struct {
	calls int
	items []goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.calls++
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := seatmappkg.NewService(seatmappkg.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableBuilder: true,
		Service:       service,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if builder.items[0].Label != "Seat maps" || builder.items[0].Route != "admin.seatmap.templates" {
		t.Fatalf("unexpected default menu item %+v", builder.items[0])
	}
	if admin.Seatmap() == nil {
		t.Fatalf("expected seatmap service")
	}
}

const hallScene = `{"viewBox": [10, 10], "root": {"tagName": "g", "children": [
  {"tagName": "g", "properties": {"id": "tickets"}, "children": [
    {"tagName": "g", "properties": {"id": "ZA-R1"}, "children": [{"tagName": "rect", "properties": {"width": "1", "height": "1"}}]}
  ]}
]}}`

func TestAdminBootstrapSeedsOpenTemplates(t *testing.T) {
	ctx := context.Background()
	service := seatmappkg.NewService(seatmappkg.Options{})
	var sessionIDs []string
	for _, templateID := range []string{"main-hall", "main-hall", ""} {
		res, err := service.LoadTemplate(ctx, seatmappkg.LoadTemplateRequest{TemplateID: templateID, Scene: []byte(hallScene)})
		if err != nil {
			t.Fatalf("LoadTemplate returned error: %v", err)
		}
		sessionIDs = append(sessionIDs, res.SessionID)
		defer service.CloseSession(ctx, res.SessionID)
	}

	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{EnableBuilder: true, Service: service, MenuBuilder: builder})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 2 {
		t.Fatalf("expected builder entry plus one template entry, got %d calls", builder.calls)
	}
	entry := builder.items[1]
	if entry.Label != "Main Hall" || entry.Route != "admin.seatmap.preview" || entry.Parent != "admin.seatmap.templates" {
		t.Fatalf("unexpected template entry %+v", entry)
	}
	if id := entry.Params["id"]; id != sessionIDs[0] && id != sessionIDs[1] {
		t.Fatalf("expected entry to link a main-hall session, got %q", id)
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableBuilder: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableBuilder: false,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if admin.Seatmap() != nil {
		t.Fatalf("expected nil service when disabled")
	}
}
