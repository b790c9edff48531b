package gorouter

import (
	"testing"

	"github.com/goliatone/go-seatmap/components/seatmap"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router is missing")
	}
	if err := Register(Config[struct{}]{Service: seatmap.NewService(seatmap.Options{})}); err == nil {
		t.Fatalf("expected error when router is missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Preview: "/venues/:id/preview"})
	if routes.Preview != "/venues/:id/preview" {
		t.Fatalf("expected custom preview route to be kept, got %s", routes.Preview)
	}
	if routes.Templates != "/seatmap/templates" {
		t.Fatalf("expected default templates route, got %s", routes.Templates)
	}
	if routes.WebSocket != "/seatmap/ws" {
		t.Fatalf("expected default websocket route, got %s", routes.WebSocket)
	}
}

func TestWantsCBOR(t *testing.T) {
	cases := map[string]bool{
		"":                                  false,
		"application/json":                  false,
		"application/cbor":                  true,
		"text/html, Application/CBOR;q=0.9": true,
		"application/cbor-seq":              false,
		"application/json;q=1, */*;q=0.1":   false,
	}
	for accept, want := range cases {
		if got := wantsCBOR(accept); got != want {
			t.Fatalf("wantsCBOR(%q) = %v, want %v", accept, got, want)
		}
	}
}
