package goadmin

import (
	"context"
	"errors"
	"fmt"

	"github.com/ettle/strcase"

	seatmappkg "github.com/goliatone/go-seatmap/pkg/seatmap"
)

// MenuBuilder ensures the seat map builder entry exists within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures builder link metadata. Parent names the route of the
// entry a child item nests under.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
	Parent   string
	Params   map[string]string
}

// Config wires the seat map service and feature flag into an admin shell.
type Config struct {
	EnableBuilder   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *seatmappkg.Service
	DefaultMenuItem MenuItem
	// TemplateRoute is the route each open template entry links to.
	TemplateRoute string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed the builder menu entry.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableBuilder && cfg.Service == nil {
		return nil, errors.New("goadmin: seatmap service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Seat maps"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.seatmap.templates"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "grid"
	}
	if cfg.TemplateRoute == "" {
		cfg.TemplateRoute = "admin.seatmap.preview"
	}
	return &Admin{cfg: cfg}, nil
}

// Seatmap exposes the configured service when the builder is enabled.
func (a *Admin) Seatmap() *seatmappkg.Service {
	if !a.cfg.EnableBuilder {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds the builder entry plus one child entry per template with
// an open session. Templates opened in several sessions link to the first.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableBuilder || a.cfg.MenuBuilder == nil {
		return nil
	}
	if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem); err != nil {
		return err
	}
	sessions, err := a.cfg.Service.Sessions(ctx)
	if err != nil {
		return fmt.Errorf("goadmin: list seatmap sessions: %w", err)
	}
	seen := map[string]bool{}
	for _, session := range sessions {
		if session.TemplateID == "" || seen[session.TemplateID] {
			continue
		}
		seen[session.TemplateID] = true
		item := a.TemplateMenuItem(session.TemplateID, session.ID)
		item.Position = len(seen)
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return err
		}
	}
	return nil
}

// TemplateMenuItem builds the child entry linking to a template's builder session.
func (a *Admin) TemplateMenuItem(templateID, sessionID string) MenuItem {
	return MenuItem{
		Label:  strcase.ToCase(templateID, strcase.TitleCase, ' '),
		Route:  a.cfg.TemplateRoute,
		Icon:   "map",
		Parent: a.cfg.DefaultMenuItem.Route,
		Params: map[string]string{"id": sessionID},
	}
}
